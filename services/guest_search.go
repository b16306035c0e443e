package services

import (
	"context"
	"sort"
	"strings"

	"github.com/evalle012006/sg-sub011/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

// GuestSearchService ranks guests against a free-text query using fuzzy
// name matching, so admins find "Jon Smyth" when they type "john smith".
type GuestSearchService struct {
	db *gorm.DB
}

func NewGuestSearchService(db *gorm.DB) *GuestSearchService {
	return &GuestSearchService{db: db}
}

// NormalizeQuery folds accents and case so matching is diacritic-insensitive.
func NormalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

// NewNameMatcher builds a bag-of-words matcher over guest names.
func NewNameMatcher(names []string) *closestmatch.ClosestMatch {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		normalized = append(normalized, NormalizeQuery(n))
	}
	return closestmatch.New(normalized, []int{2, 3})
}

// ScoreGuest rates how well a guest matches the query. Higher is better.
func ScoreGuest(query string, guest *models.Guest, matcher *closestmatch.ClosestMatch) int {
	name := NormalizeQuery(guest.FirstName + " " + guest.LastName)
	score := 0

	if strings.Contains(name, query) {
		score += 50
	}
	if strings.Contains(NormalizeQuery(guest.Email), query) {
		score += 30
	}

	if matcher != nil && matcher.Closest(query) == name {
		score += 20
	}

	distance := levenshtein.DistanceForStrings([]rune(query), []rune(name), levenshtein.DefaultOptions)
	if distance < len(name) {
		score += len(name) - distance
	}

	return score
}

// Search returns active guests ranked by match quality, best first.
func (s *GuestSearchService) Search(ctx context.Context, query string, limit int) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&guests).Error; err != nil {
		return nil, wrapStorage("Failed to load guests", err)
	}

	query = NormalizeQuery(query)
	if query == "" {
		if limit > 0 && len(guests) > limit {
			guests = guests[:limit]
		}
		return guests, nil
	}

	names := make([]string, 0, len(guests))
	for i := range guests {
		names = append(names, guests[i].FirstName+" "+guests[i].LastName)
	}
	matcher := NewNameMatcher(names)

	type scored struct {
		guest models.Guest
		score int
	}
	ranked := make([]scored, 0, len(guests))
	for i := range guests {
		sc := ScoreGuest(query, &guests[i], matcher)
		if sc > 0 {
			ranked = append(ranked, scored{guest: guests[i], score: sc})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	result := make([]models.Guest, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.guest)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
