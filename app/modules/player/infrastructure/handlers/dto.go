package playerhandlers

import (
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
)

// UpsertPlayerRequest is the body of create and update requests.
type UpsertPlayerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// PagingResponse echoes the requested window and the directory size.
type PagingResponse struct {
	StartIndex int `json:"startIndex"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
}

// PlayerListResponse is the body of a listing.
type PlayerListResponse struct {
	Items  []playertypes.PlayerView `json:"items"`
	Paging PagingResponse           `json:"paging"`
	Sort   string                   `json:"sort"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func newPlayerListResponse(page *playertypes.PlayerPage) PlayerListResponse {
	items := page.Items
	if items == nil {
		items = []playertypes.PlayerView{}
	}
	return PlayerListResponse{
		Items: items,
		Paging: PagingResponse{
			StartIndex: page.Offset,
			PageSize:   page.PageSize,
			Total:      page.TotalCount,
		},
		Sort: page.Sort.String(),
	}
}
