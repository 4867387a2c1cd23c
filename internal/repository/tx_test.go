package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"id": "id", "name": "name", "release_date": "release_date"}

	assert.Equal(t, "ORDER BY name ASC", orderClause("name", "id", allowed))
	assert.Equal(t, "ORDER BY name DESC", orderClause("name,desc", "id", allowed))
	assert.Equal(t, "ORDER BY release_date DESC", orderClause("release_date,DESC", "id", allowed))
	assert.Equal(t, "ORDER BY id ASC", orderClause("", "id", allowed))

	// Unknown columns fall back to the default instead of reaching the query.
	assert.Equal(t, "ORDER BY id ASC", orderClause("password_hash", "id", allowed))
	assert.Equal(t, "ORDER BY id ASC", orderClause("1; DROP TABLE products", "id", allowed))
	assert.Equal(t, "ORDER BY id DESC", orderClause("bogus,desc", "id", allowed))
}
