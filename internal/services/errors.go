package services

import (
	"errors"
	"fmt"

	"github.com/excellence-hub/excellence/internal/models"
)

// storageFault makes sure a store failure carries models.ErrStorage.
func storageFault(err error) error {
	if err == nil || errors.Is(err, models.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrStorage, err)
}
