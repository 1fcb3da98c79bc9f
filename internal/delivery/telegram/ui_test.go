package telegram

import (
	"testing"

	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetMenu(t *testing.T) {
	menu := assetMenu(btnSubscribeAsset)

	require.NotNil(t, menu.InlineKeyboard)
	assert.Len(t, menu.InlineKeyboard, 2, "four assets should fill two rows of two")

	var datas []string
	for _, row := range menu.InlineKeyboard {
		assert.Len(t, row, 2)
		for _, btn := range row {
			datas = append(datas, btn.Data)
			assert.Equal(t, btnSubscribeAsset.Unique, btn.Unique)
		}
	}

	assert.ElementsMatch(t, dto.AssetList(), datas)
}

func TestDirectionPhrase(t *testing.T) {
	assert.Equal(t, "up", directionPhrase(model.DirectionIncrease))
	assert.Equal(t, "down", directionPhrase(model.DirectionDecrease))
}
