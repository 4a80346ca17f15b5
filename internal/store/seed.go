package store

import "github.com/bookloft/catalog-api/internal/models"

// SeedBooks returns the default catalog loaded at startup when the
// backing store is empty.
func SeedBooks() map[string]*models.Book {
	return map[string]*models.Book{
		"1":  {Title: "Things Fall Apart", Author: "Chinua Achebe", Reviews: map[string]string{}},
		"2":  {Title: "Fairy tales", Author: "Hans Christian Andersen", Reviews: map[string]string{}},
		"3":  {Title: "The Divine Comedy", Author: "Dante Alighieri", Reviews: map[string]string{}},
		"4":  {Title: "The Epic Of Gilgamesh", Author: "Unknown", Reviews: map[string]string{}},
		"5":  {Title: "The Book Of Job", Author: "Unknown", Reviews: map[string]string{}},
		"6":  {Title: "One Thousand and One Nights", Author: "Unknown", Reviews: map[string]string{}},
		"7":  {Title: "Njal's Saga", Author: "Unknown", Reviews: map[string]string{}},
		"8":  {Title: "Pride and Prejudice", Author: "Jane Austen", Reviews: map[string]string{}},
		"9":  {Title: "Le Pere Goriot", Author: "Honore de Balzac", Reviews: map[string]string{}},
		"10": {Title: "Molloy, Malone Dies, The Unnamable, the trilogy", Author: "Samuel Beckett", Reviews: map[string]string{}},
	}
}
