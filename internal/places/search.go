package places

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest query sent to the search service.
const MinQueryLength = 2

type searchResponse struct {
	Found   int            `json:"found"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	SearchVal string `json:"SEARCHVAL"`
	Address   string `json:"ADDRESS"`
	Latitude  string `json:"LATITUDE"`
	Longitude string `json:"LONGITUDE"`
}

// Search returns places matching query. Queries shorter than MinQueryLength
// return nil without a request. Concurrent searches for the same query share
// one request.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, nil
	}

	v, err, _ := c.inflight.Do("search:"+query, func() (any, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Place), nil
}

func (c *Client) search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("searchVal", query)
	params.Set("returnGeom", "Y")
	params.Set("getAddrDetails", "Y")
	params.Set("pageNum", "1")

	var resp searchResponse
	if err := c.get(ctx, c.searchURL+pathSearch+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		lat, err := strconv.ParseFloat(r.Latitude, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(r.Longitude, 64)
		if err != nil {
			continue
		}
		places = append(places, Place{
			Name:    r.SearchVal,
			Address: r.Address,
			Coord:   Coord{Lat: lat, Lng: lng},
		})
	}
	return places, nil
}
