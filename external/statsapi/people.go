package statsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/domain/reference"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
)

func statsQuery(r baseball.StatsRequest) url.Values {
	values := url.Values{}
	values.Set("stats", strings.Join(r.Types, ","))
	values.Set("group", string(r.Group))
	if r.Season != "" {
		values.Set("season", r.Season)
	}
	if r.GameType != "" {
		values.Set("gameType", r.GameType)
	}
	return values
}

// FetchPersonStats returns the raw response body of a stats query.
func (c *Client) FetchPersonStats(ctx context.Context, req baseball.StatsRequest) ([]byte, error) {
	if err := c.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	path := "/people/" + strconv.FormatInt(int64(req.PersonID), 10) + "/stats"
	raw, err := c.getRaw(ctx, path, statsQuery(req))
	if err != nil {
		return nil, fmt.Errorf("fetch stats person_id=%d group=%s: %w", req.PersonID, req.Group, err)
	}
	return raw, nil
}

// GetTeam implements reference.Repository. An unknown team is (zero, false, nil).
func (c *Client) GetTeam(ctx context.Context, teamID baseball.TeamID) (reference.Team, bool, error) {
	if teamID <= 0 {
		return reference.Team{}, false, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope teamsEnvelope
	path := "/teams/" + strconv.FormatInt(int64(teamID), 10)
	if _, err := c.getJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, usecase.ErrNotFound) {
			return reference.Team{}, false, nil
		}
		return reference.Team{}, false, fmt.Errorf("fetch team team_id=%d: %w", teamID, err)
	}

	for _, item := range envelope.Teams {
		if item.ID != teamID {
			continue
		}
		return reference.Team{
			ID:           item.ID,
			Name:         strings.TrimSpace(item.Name),
			Abbreviation: strings.TrimSpace(item.Abbreviation),
			LocationName: strings.TrimSpace(item.LocationName),
			LeagueID:     item.League.ID,
			DivisionID:   item.Division.ID,
			Active:       item.Active,
		}, true, nil
	}
	return reference.Team{}, false, nil
}

// GetPerson implements reference.Repository.
func (c *Client) GetPerson(ctx context.Context, personID baseball.PersonID) (reference.Person, bool, error) {
	if personID <= 0 {
		return reference.Person{}, false, fmt.Errorf("%w: person id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope peopleEnvelope
	path := "/people/" + strconv.FormatInt(int64(personID), 10)
	if _, err := c.getJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, usecase.ErrNotFound) {
			return reference.Person{}, false, nil
		}
		return reference.Person{}, false, fmt.Errorf("fetch person person_id=%d: %w", personID, err)
	}

	for _, item := range envelope.People {
		if item.ID != personID {
			continue
		}
		person := reference.Person{
			ID:            item.ID,
			FullName:      strings.TrimSpace(item.FullName),
			PrimaryNumber: strings.TrimSpace(item.PrimaryNumber),
			BatSide:       item.BatSide.Code,
			PitchHand:     item.PitchHand.Code,
			Active:        item.Active,
		}
		if item.PrimaryPosition != nil {
			person.PrimaryPosition = *item.PrimaryPosition
		}
		return person, true, nil
	}
	return reference.Person{}, false, nil
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID           baseball.TeamID `json:"id"`
	Name         string          `json:"name"`
	Abbreviation string          `json:"abbreviation"`
	LocationName string          `json:"locationName"`
	League       idRef           `json:"league"`
	Division     idRef           `json:"division"`
	Active       bool            `json:"active"`
}

type peopleEnvelope struct {
	People []personItem `json:"people"`
}

type personItem struct {
	ID              baseball.PersonID     `json:"id"`
	FullName        string                `json:"fullName"`
	PrimaryNumber   string                `json:"primaryNumber"`
	PrimaryPosition *baseball.PositionRef `json:"primaryPosition"`
	BatSide         codeRef               `json:"batSide"`
	PitchHand       codeRef               `json:"pitchHand"`
	Active          bool                  `json:"active"`
}

type idRef struct {
	ID int64 `json:"id"`
}

type codeRef struct {
	Code string `json:"code"`
}
