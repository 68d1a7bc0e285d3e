package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/network"
	"github.com/anisan-cli/anifetch/util"
)

// Endpoint is the Anilist GraphQL endpoint.
var Endpoint = "https://graphql.anilist.co"

// ErrNotFound is returned when Anilist has no anime with the requested id.
var ErrNotFound = errors.New("anime not found")

type byIDResponse struct {
	Data struct {
		Media *Anime `json:"media"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"errors"`
}

// GetByID returns the anime with the given id. Successful lookups are cached for two days.
func GetByID(ctx context.Context, id int) (*Anime, error) {
	if anime, ok := idCacher.Get(id).Get(); ok {
		return anime, nil
	}

	body, err := json.Marshal(map[string]any{
		"query": byIDQuery,
		"variables": map[string]any{
			"id": id,
		},
	})
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{"anilist_id": id})
	logger.Debug("querying anilist")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	var response byIDResponse
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("anilist %d: %w", id, ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anilist returned status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("anilist: %s", response.Errors[0].Message)
	}

	anime := response.Data.Media
	if anime == nil {
		return nil, fmt.Errorf("anilist %d: %w", id, ErrNotFound)
	}

	logger.WithField("title", anime.Name()).Info("resolved anilist subject")
	_ = idCacher.Set(anime)
	return anime, nil
}
