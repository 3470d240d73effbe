package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/utils"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode(" abcd "))
	assert.Equal(t, "XY12", NormalizeCode("XY12"))
	assert.Equal(t, "", NormalizeCode("  "))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, s.Genres)
	assert.NotNil(t, s.Genres)
	assert.Empty(t, s.Providers)
	assert.Zero(t, s.MinRating)
	assert.Equal(t, VoteModeMajority, s.VoteMode)
	assert.Equal(t, DiscoveryTrending, s.DiscoveryMode)
	assert.Nil(t, s.YearRange)
}

func TestMergeKeepsUntouchedFields(t *testing.T) {
	base := DefaultSettings()
	base.MinRating = 7

	merged, err := base.Merge(SettingsPatch{Genres: &[]int{28}})
	require.NoError(t, err)

	assert.Equal(t, []int{28}, merged.Genres)
	assert.Equal(t, 7.0, merged.MinRating)
	assert.Equal(t, VoteModeMajority, merged.VoteMode)
	assert.Empty(t, base.Genres, "receiver must not change")
}

func TestMergeAllFields(t *testing.T) {
	mode := VoteModeUnanimity
	disc := DiscoveryClassic
	patch := SettingsPatch{
		Genres:        &[]int{35, 18},
		MinRating:     utils.Ptr(6.5),
		Providers:     &[]int{8, 337},
		VoteMode:      &mode,
		DiscoveryMode: &disc,
		YearRange:     &YearRange{Min: 1990, Max: 1999},
	}

	merged, err := DefaultSettings().Merge(patch)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Genres:        []int{35, 18},
		MinRating:     6.5,
		Providers:     []int{8, 337},
		VoteMode:      VoteModeUnanimity,
		DiscoveryMode: DiscoveryClassic,
		YearRange:     &YearRange{Min: 1990, Max: 1999},
	}, merged)

	(*patch.Genres)[0] = 99
	assert.Equal(t, 35, merged.Genres[0], "merged settings must not alias the patch")
}

func TestMergeClearsListsWithEmptySlice(t *testing.T) {
	base := DefaultSettings()
	base.Providers = []int{8}

	merged, err := base.Merge(SettingsPatch{Providers: &[]int{}})
	require.NoError(t, err)
	assert.Empty(t, merged.Providers)
}

func TestMergeRejectsInvalidPatch(t *testing.T) {
	bad := VoteMode("plurality")
	badDisc := DiscoveryMode("random")

	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{"unknown vote mode", SettingsPatch{VoteMode: &bad}},
		{"unknown discovery mode", SettingsPatch{DiscoveryMode: &badDisc}},
		{"rating above 10", SettingsPatch{MinRating: utils.Ptr(11.0)}},
		{"negative rating", SettingsPatch{MinRating: utils.Ptr(-1.0)}},
		{"inverted years", SettingsPatch{YearRange: &YearRange{Min: 2000, Max: 1990}}},
		{"zero genre id", SettingsPatch{Genres: &[]int{28, 0}}},
		{"valid genres but bad mode", SettingsPatch{Genres: &[]int{28}, VoteMode: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultSettings()
			merged, err := base.Merge(tt.patch)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
			assert.Equal(t, base, merged)
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := Settings{Genres: []int{1}, YearRange: &YearRange{Min: 2000, Max: 2010}}
	c := s.Clone()
	c.Genres[0] = 2
	c.YearRange.Max = 2020

	assert.Equal(t, 1, s.Genres[0])
	assert.Equal(t, 2010, s.YearRange.Max)
	assert.NotNil(t, c.Providers)
}
