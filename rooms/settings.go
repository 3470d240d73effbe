package rooms

import (
	"slices"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/validation"
)

type YearRange struct {
	Min int `json:"min" validate:"min=1870,max=2100"`
	Max int `json:"max" validate:"gtefield=Min,max=2100"`
}

// Settings drive the catalog query clients run and the match threshold.
// Empty genres or providers and a zero minRating mean unrestricted.
type Settings struct {
	Genres        []int         `json:"genres"`
	MinRating     float64       `json:"minRating"`
	Providers     []int         `json:"providers"`
	VoteMode      VoteMode      `json:"voteMode"`
	DiscoveryMode DiscoveryMode `json:"discoveryMode"`
	YearRange     *YearRange    `json:"yearRange,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Genres:        []int{},
		Providers:     []int{},
		VoteMode:      VoteModeMajority,
		DiscoveryMode: DiscoveryTrending,
	}
}

// Clone returns a copy sharing no memory with s, safe to hand out of a room lock.
func (s Settings) Clone() Settings {
	out := s
	out.Genres = slices.Clone(s.Genres)
	out.Providers = slices.Clone(s.Providers)
	if out.Genres == nil {
		out.Genres = []int{}
	}
	if out.Providers == nil {
		out.Providers = []int{}
	}
	if s.YearRange != nil {
		yr := *s.YearRange
		out.YearRange = &yr
	}
	return out
}

// SettingsPatch is a partial update. Nil fields are left untouched.
type SettingsPatch struct {
	Genres        *[]int         `json:"genres,omitempty" validate:"omitempty,max=30,dive,gt=0"`
	MinRating     *float64       `json:"minRating,omitempty" validate:"omitempty,min=0,max=10"`
	Providers     *[]int         `json:"providers,omitempty" validate:"omitempty,max=50,dive,gt=0"`
	VoteMode      *VoteMode      `json:"voteMode,omitempty" validate:"omitempty,votemode"`
	DiscoveryMode *DiscoveryMode `json:"discoveryMode,omitempty" validate:"omitempty,discoverymode"`
	YearRange     *YearRange     `json:"yearRange,omitempty"`
}

func (p SettingsPatch) Validate() error {
	if err := validation.Struct(p); err != nil {
		return errors.Wrap(ErrInvalidSettings, err, "validate settings patch")
	}
	return nil
}

// Merge applies p over s. The patch is validated as a whole first, so an
// invalid patch leaves nothing half-applied.
func (s Settings) Merge(p SettingsPatch) (Settings, error) {
	if err := p.Validate(); err != nil {
		return s, err
	}

	out := s.Clone()
	if p.Genres != nil {
		out.Genres = slices.Clone(*p.Genres)
	}
	if p.MinRating != nil {
		out.MinRating = *p.MinRating
	}
	if p.Providers != nil {
		out.Providers = slices.Clone(*p.Providers)
	}
	if p.VoteMode != nil {
		out.VoteMode = *p.VoteMode
	}
	if p.DiscoveryMode != nil {
		out.DiscoveryMode = *p.DiscoveryMode
	}
	if p.YearRange != nil {
		yr := *p.YearRange
		out.YearRange = &yr
	}
	return out.Clone(), nil
}
