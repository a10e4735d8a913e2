package validator

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

var (
	structValidator *validator.Validate
	initOnce        sync.Once
)

func instance() *validator.Validate {
	initOnce.Do(func() {
		structValidator = validator.New()
		_ = structValidator.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return Color(fl.Field().String(), nil)
		})
	})
	return structValidator
}

func Color(value string, _ map[string]interface{}) bool {
	_, err := qr.ParseHexColor(value)
	return err == nil
}

// Configuration checks field ranges and enums. The margin must leave room
// for the symbol at export size.
func Configuration(cfg entity.Configuration) error {
	if err := instance().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", errorz.ErrInvalidConfig, err)
	}
	if 2*cfg.Margin >= cfg.ExportSize {
		return fmt.Errorf("%w: margin %d too large for export size %d", errorz.ErrInvalidConfig, cfg.Margin, cfg.ExportSize)
	}
	return nil
}
