package tmdb

import "github.com/rubsen49-sketch/MovieMatch/catalog"

type discoverResponse struct {
	Page         int          `json:"page"`
	Results      []tmdbMovie  `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

type watchProvidersResponse struct {
	ID      int                       `json:"id"`
	Results map[string]regionProviders `json:"results"`
}

type regionProviders struct {
	Link     string         `json:"link"`
	Flatrate []tmdbProvider `json:"flatrate"`
}

type tmdbProvider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (r *discoverResponse) toPage() *catalog.Page {
	out := &catalog.Page{
		Page:         r.Page,
		TotalPages:   r.TotalPages,
		TotalResults: r.TotalResults,
		Results:      make([]catalog.Movie, 0, len(r.Results)),
	}
	for _, m := range r.Results {
		genres := m.GenreIDs
		if genres == nil {
			genres = []int{}
		}
		out.Results = append(out.Results, catalog.Movie{
			ID:          m.ID,
			Title:       m.Title,
			Overview:    m.Overview,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
			Popularity:  m.Popularity,
			GenreIDs:    genres,
		})
	}
	return out
}

func (r regionProviders) toProviders() []catalog.StreamingProvider {
	out := make([]catalog.StreamingProvider, 0, len(r.Flatrate))
	for _, p := range r.Flatrate {
		out = append(out, catalog.StreamingProvider{
			ID:       p.ProviderID,
			Name:     p.ProviderName,
			LogoPath: p.LogoPath,
			Priority: p.DisplayPriority,
		})
	}
	return out
}
