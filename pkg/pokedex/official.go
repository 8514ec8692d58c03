package pokedex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultOfficialBaseURL is the public catalog endpoint
const DefaultOfficialBaseURL = "https://pokeapi.co/api/v2"

// OfficialClient talks to the public third-party catalog.
type OfficialClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOfficialClient creates a catalog client. An empty baseURL selects the
// public endpoint.
func NewOfficialClient(baseURL string) *OfficialClient {
	if baseURL == "" {
		baseURL = DefaultOfficialBaseURL
	}
	return &OfficialClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// officialPokemon is the catalog's /pokemon payload, reduced to the fields
// the normalizer consumes.
type officialPokemon struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// officialSpecies is the /pokemon-species payload: the evolution-chain
// pointer plus localized flavor text.
type officialSpecies struct {
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
}

// chainLink is one node of the catalog's recursive evolution-chain resource
type chainLink struct {
	Species struct {
		Name string `json:"name"`
	} `json:"species"`
	EvolutionDetails []evolutionDetailPayload `json:"evolution_details"`
	EvolvesTo        []chainLink              `json:"evolves_to"`
}

type evolutionDetailPayload struct {
	Trigger struct {
		Name string `json:"name"`
	} `json:"trigger"`
	MinLevel *int `json:"min_level"`
	Item     *struct {
		Name string `json:"name"`
	} `json:"item"`
	HeldItem *struct {
		Name string `json:"name"`
	} `json:"held_item"`
	TimeOfDay    string `json:"time_of_day"`
	MinHappiness *int   `json:"min_happiness"`
	KnownMove    *struct {
		Name string `json:"name"`
	} `json:"known_move"`
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
}

// Lookup fetches a Pokemon by exact name or numeric id and normalizes it.
// Flavor text lives on the species resource, so that fetch is best-effort:
// a missing species never fails the lookup.
func (c *OfficialClient) Lookup(ctx context.Context, query string) (*Record, error) {
	var raw officialPokemon
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(query), &raw); err != nil {
		return nil, fmt.Errorf("official lookup %q: %w", query, err)
	}

	flavor := ""
	if species, err := c.species(ctx, raw.Name); err == nil {
		flavor = englishFlavorText(species)
	}

	return normalizeOfficial(&raw, flavor), nil
}

// Sprite resolves just the sprite URL for a name. Used when decorating
// evolution-chain nodes.
func (c *OfficialClient) Sprite(ctx context.Context, name string) (string, error) {
	var raw officialPokemon
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(name), &raw); err != nil {
		return "", fmt.Errorf("official sprite %q: %w", name, err)
	}
	return pickSprite(&raw), nil
}

func (c *OfficialClient) species(ctx context.Context, query string) (*officialSpecies, error) {
	var species officialSpecies
	if err := c.getJSON(ctx, c.baseURL+"/pokemon-species/"+url.PathEscape(query), &species); err != nil {
		return nil, fmt.Errorf("official species %q: %w", query, err)
	}
	return &species, nil
}

// evolutionChainURL returns the chain resource pointer for a species, or a
// NoEvolutionDataError when the species declares none.
func (c *OfficialClient) evolutionChainURL(ctx context.Context, name string) (string, error) {
	species, err := c.species(ctx, name)
	if err != nil {
		return "", err
	}
	if species.EvolutionChain.URL == "" {
		return "", &NoEvolutionDataError{Name: name}
	}
	return species.EvolutionChain.URL, nil
}

// evolutionChain fetches the chain resource at the URL the species lookup
// returned. The URL is absolute and source-controlled.
func (c *OfficialClient) evolutionChain(ctx context.Context, chainURL string) (*chainLink, error) {
	var payload struct {
		Chain chainLink `json:"chain"`
	}
	if err := c.getJSON(ctx, chainURL, &payload); err != nil {
		return nil, fmt.Errorf("official evolution chain: %w", err)
	}
	return &payload.Chain, nil
}

func (c *OfficialClient) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Any non-2xx means "not found in this source"
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
