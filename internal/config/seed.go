package config

import (
	"strings"
)

// SeedConfig содержит стартовое наполнение справочника категорий.
type SeedConfig struct {
	Categories string `yaml:"categories" env:"NOTES_SEED_CATEGORIES" env-default:"Matemáticas,Física,Química,Historia"`
}

// GetCategories возвращает список имен категорий без пустых элементов.
func (s *SeedConfig) GetCategories() []string {
	parts := strings.Split(s.Categories, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
