package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").From("bookings").
		Where(squirrel.Eq{"user_id": "u1", "status": "Confirmed"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE status = $1 AND user_id = $2", query)
	assert.Equal(t, []interface{}{"Confirmed", "u1"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("bookings").Set("synced", true).Where(squirrel.Eq{"id": "b1"}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET synced = $1 WHERE id = $2", query)
}
