package utils

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"
	"unicode"

	"crypto-pulse/pkg/logger"
)

// SafeGo is a goroutine runner that recovers from panics.
type SafeGo struct {
	fn func()
}

// GoSafe wraps the given function so it can be run in a panic-safe goroutine.
func GoSafe(fn func()) *SafeGo {
	return &SafeGo{fn: fn}
}

func (s *SafeGo) Run() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		s.fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		pc, _, _, ok := runtime.Caller(1)
		funcName := "unknown"
		if ok {
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				parts := strings.Split(fn.Name(), "/")
				funcName = parts[len(parts)-1]
			}
		}

		log.Warn("Context cancelled",
			logger.StringField("caller", funcName),
		)
		return false
	default:
		return true
	}
}

func CapitalizeSentence(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}
