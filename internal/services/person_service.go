package services

import (
	"context"
	"fmt"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/getmentor/persons-api/pkg/errors"
	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/tracing"
	"go.uber.org/zap"
)

// nullKey is the search result key used when no name was supplied
const nullKey = "null"

// knownPersonIDs is the fixed set of ids that exist. Never mutated.
var knownPersonIDs = map[int]struct{}{
	1: {}, 2: {}, 3: {}, 4: {}, 5: {},
}

// PersonService validates-and-echoes person payloads. It holds no state.
type PersonService struct{}

// NewPersonService creates a new person service instance
func NewPersonService() *PersonService {
	return &PersonService{}
}

// Create returns the person without its password
func (s *PersonService) Create(ctx context.Context, person *models.Person) (*models.PersonOut, error) {
	_, finish := tracing.StartOperation(ctx, "PersonService", "Create")
	defer finish(nil)

	out := person.ToOut()
	metrics.PersonOperations.WithLabelValues("create", "success").Inc()
	logger.Debug("Person created",
		zap.String("first_name", person.FirstName),
		zap.String("last_name", person.LastName),
		zap.Int("age", person.Age))

	return &out, nil
}

// Search echoes the query as a single name->age pair
func (s *PersonService) Search(ctx context.Context, query *models.PersonQuery) (map[string]string, error) {
	_, finish := tracing.StartOperation(ctx, "PersonService", "Search")
	defer finish(nil)

	key := nullKey
	if query.Name != nil {
		key = *query.Name
	}

	metrics.PersonOperations.WithLabelValues("search", "success").Inc()
	return map[string]string{key: query.Age}, nil
}

// Exists returns an ErrNotFound-wrapped error when personID is unknown.
// Ids too large for an int are never known.
func (s *PersonService) Exists(ctx context.Context, personID models.PersonID) (err error) {
	_, finish := tracing.StartOperation(ctx, "PersonService", "Exists")
	defer func() { finish(err) }()

	id, fits := personID.Int()
	if _, known := knownPersonIDs[id]; !fits || !known {
		metrics.PersonOperations.WithLabelValues("lookup", "not_found").Inc()
		logger.Debug("Person not found", zap.String("person_id", personID.Canonical()))
		return errors.NotFoundError(fmt.Sprintf("person %s", personID.Canonical()))
	}

	metrics.PersonOperations.WithLabelValues("lookup", "success").Inc()
	return nil
}

// Update merges the person and location into one flat record.
// Nothing is stored; personID only has to be valid.
func (s *PersonService) Update(ctx context.Context, personID models.PersonID, person *models.Person, location *models.Location) (*models.PersonWithLocation, error) {
	_, finish := tracing.StartOperation(ctx, "PersonService", "Update")
	defer finish(nil)

	merged := &models.PersonWithLocation{
		PersonBase: person.PersonBase,
		Password:   person.Password,
		Location:   *location,
	}

	metrics.PersonOperations.WithLabelValues("update", "success").Inc()
	logger.Debug("Person updated",
		zap.String("person_id", personID.Canonical()),
		zap.Stringp("city", location.City),
		zap.Stringp("country", location.Country))

	return merged, nil
}
