// Package directory exposes the authenticated view of the school
// registry: it guards fetches behind the session store and keeps the
// all-or-nothing load contract.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evaaz/schoolctl/client"
	"github.com/evaaz/schoolctl/session"
)

// ErrNotAuthenticated is returned when a fetch is attempted without a
// session. No network call is made in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrLoadFailed wraps any transport or decode failure on fetch. No
// partial results accompany it.
var ErrLoadFailed = errors.New("loading schools failed")

// SchoolFetcher is the slice of the API client the directory needs.
type SchoolFetcher interface {
	FetchAllSchools(ctx context.Context, token string) ([]client.School, error)
}

// Service fetches the school directory on behalf of the current
// session.
type Service struct {
	sess *session.Store
	api  SchoolFetcher
}

func NewService(sess *session.Store, api SchoolFetcher) *Service {
	return &Service{sess: sess, api: api}
}

// FetchAll retrieves the full canonical school list. It fails with
// ErrNotAuthenticated before any I/O when no session is held, and with
// ErrLoadFailed on any transport or decode problem.
func (s *Service) FetchAll(ctx context.Context) ([]client.School, error) {
	token, ok := s.sess.Token()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	schools, err := s.api.FetchAllSchools(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("school fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	log.Debug().Int("count", len(schools)).Msg("schools loaded")
	return schools, nil
}
