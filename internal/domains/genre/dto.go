package genre

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GenreRequest is the create/update payload. Update replaces the name
// wholesale; there are no partial updates on genres.
type GenreRequest struct {
	Name string `json:"name"`
}

func (r GenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("genre name is required"),
			validation.Length(1, 255),
		),
	)
}

// GenreResponse is the response shape: identity and name only.
type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToResponse(g *Genre) *GenreResponse {
	if g == nil {
		return nil
	}
	return &GenreResponse{ID: g.ID, Name: g.Name}
}

func ToResponseList(genres []Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for i := range genres {
		out = append(out, GenreResponse{ID: genres[i].ID, Name: genres[i].Name})
	}
	return out
}
