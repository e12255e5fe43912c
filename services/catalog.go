package services

import (
	"encoding/json"
	"os"

	"github.com/0levin/shawerma-bot/models"

	"github.com/rs/zerolog"
)

// LoadCatalog reads the menu definition, a JSON array of {name, price}.
// A missing, empty or malformed file is not fatal: the bot keeps running with
// an empty menu and the condition is logged.
func LoadCatalog(path string, logger zerolog.Logger) []models.MenuItem {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("file", path).Msg("menu file missing, starting with empty catalog")
		} else {
			logger.Error().Err(err).Str("file", path).Msg("read menu file")
		}
		return nil
	}
	if len(data) == 0 {
		logger.Warn().Str("file", path).Msg("menu file empty")
		return nil
	}

	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Error().Err(err).Str("file", path).Msg("decode menu file")
		return nil
	}
	return items
}
