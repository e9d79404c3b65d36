package services

import (
	"fmt"

	"gorm.io/gorm"

	"bak-counter/models"
)

// defaultTrophies is the static part of the catalog: the milestone tiers the
// awarding engine hands out plus the back-to-back series.
var defaultTrophies = []models.Trophy{
	{Name: "Junior", Description: "Toegekend voor het bereiken van Junior-niveau in XP.", Image: "/images/trophies/Junior.png"},
	{Name: "Senior", Description: "Toegekend voor het bereiken van Senior-niveau in XP.", Image: "/images/trophies/Senior.png"},
	{Name: "Master", Description: "Toegekend voor het meesterlijk opbouwen van XP.", Image: "/images/trophies/Master.png"},
	{Name: "Alcoholist", Description: "Toegekend voor een uitzonderlijke bijdrage aan de gemeenschap.", Image: "/images/trophies/Alcoholist.png"},
	{Name: "Leverfalen", Description: "Toegekend voor legendarische status in XP.", Image: "/images/trophies/Leverfalen.png"},

	{Name: "Strooier", Description: "Met elke overwinning strooi je gulzig alcoholische schulden over je tegenstanders heen.", Image: "/images/reputation/Strooier.webp"},
	{Name: "Mormel", Description: "Listig en veerkrachtig gedij je te midden van de groeiende afkeer van anderen.", Image: "/images/reputation/Mormel.webp"},
	{Name: "Schoft", Description: "Dapper en zegevierend; elke overwinning verhoogt de inzet.", Image: "/images/reputation/Schoft.webp"},
	{Name: "Klootzak", Description: "Op het hoogtepunt van dominantie stapelen je overwinningen zich op.", Image: "/images/reputation/Klootzak.webp"},
}

// SeedDefaultTrophies inserts the static catalog entries that are missing.
// Safe to run on every boot.
func (s *TrophyService) SeedDefaultTrophies() error {
	catalog := make([]models.Trophy, 0, len(defaultTrophies)+10)
	catalog = append(catalog, defaultTrophies...)

	for n := 1; n <= 10; n++ {
		word := "bakken"
		if n == 1 {
			word = "bak"
		}
		catalog = append(catalog, models.Trophy{
			Name:        fmt.Sprintf("Trek %d %s", n, word),
			Description: fmt.Sprintf("Toegekend voor het trekken van %d %s achter elkaar.", n, word),
			Image:       fmt.Sprintf("/images/back-to-back/%d.webp", n),
		})
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, trophy := range catalog {
			entry := trophy
			if err := tx.Where("name = ?", entry.Name).FirstOrCreate(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
