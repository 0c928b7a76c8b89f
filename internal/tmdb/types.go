package tmdb

// Explicit types for every TMDB response shape we consume. Unexpected fields
// are dropped at this boundary; nothing loosely typed travels inward.

// Show is the catalog card shape used across search, discover and rankings.
type Show struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	FirstAirDate string  `json:"first_air_date"`
}

// Genre is a TMDB genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Episode describes a single episode, used for next-episode notifications.
type Episode struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	StillPath     *string `json:"still_path"`
}

// CastMember is a single credited actor, trimmed to what the UI shows.
type CastMember struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// ShowDetails is the full detail payload for one show.
type ShowDetails struct {
	Show
	NumberOfSeasons  int         `json:"number_of_seasons"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	NextEpisodeToAir *Episode    `json:"next_episode_to_air"`
	Genres           []Genre     `json:"genres"`
	IMDBID           string      `json:"imdb_id,omitempty"`
	Cast             []CastMember `json:"cast,omitempty"`
}

// pagedShowsResponse is the raw wire shape of list endpoints.
type pagedShowsResponse struct {
	Page         int       `json:"page"`
	Results      []rawShow `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// rawShow tolerates TMDB rows that only carry original_name.
type rawShow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	FirstAirDate string  `json:"first_air_date"`
}

func (r rawShow) toShow() Show {
	name := r.Name
	if name == "" {
		name = r.OriginalName
	}
	airDate := r.FirstAirDate
	if airDate == "" {
		airDate = "Unknown"
	}
	return Show{
		ID:           r.ID,
		Name:         name,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		VoteAverage:  r.VoteAverage,
		FirstAirDate: airDate,
	}
}

// rawShowDetails is the raw wire shape of the /tv/{id} endpoint with
// credits and external_ids appended.
type rawShowDetails struct {
	rawShow
	NumberOfSeasons  int      `json:"number_of_seasons"`
	NumberOfEpisodes int      `json:"number_of_episodes"`
	NextEpisodeToAir *Episode `json:"next_episode_to_air"`
	Genres           []Genre  `json:"genres"`
	Credits          *struct {
		Cast []struct {
			Name        string  `json:"name"`
			Character   string  `json:"character"`
			ProfilePath *string `json:"profile_path"`
		} `json:"cast"`
	} `json:"credits"`
	ExternalIDs *struct {
		IMDBID string `json:"imdb_id"`
	} `json:"external_ids"`
}

const maxCastMembers = 10

func (r rawShowDetails) toShowDetails() *ShowDetails {
	details := &ShowDetails{
		Show:             r.toShow(),
		NumberOfSeasons:  r.NumberOfSeasons,
		NumberOfEpisodes: r.NumberOfEpisodes,
		NextEpisodeToAir: r.NextEpisodeToAir,
		Genres:           r.Genres,
	}
	if details.Genres == nil {
		details.Genres = []Genre{}
	}
	if r.ExternalIDs != nil {
		details.IMDBID = r.ExternalIDs.IMDBID
	}
	if r.Credits != nil {
		for i, c := range r.Credits.Cast {
			if i >= maxCastMembers {
				break
			}
			details.Cast = append(details.Cast, CastMember{
				Name:        c.Name,
				Character:   c.Character,
				ProfilePath: c.ProfilePath,
			})
		}
	}
	return details
}
