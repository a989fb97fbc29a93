package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("products").
		Where(squirrel.Eq{"store_id": 7}).
		Where(squirrel.Eq{"id": 9}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM products WHERE store_id = $1 AND id = $2", query)
	assert.Equal(t, []interface{}{7, 9}, args)
}

func TestInsert_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Insert("product_pricing_tiers").
		Columns("product_id", "min_duration").
		Values(1, 3).
		Values(1, 7).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO product_pricing_tiers (product_id,min_duration) VALUES ($1,$2),($3,$4)", query)
	assert.Len(t, args, 4)
}

func TestUpdateAndDelete(t *testing.T) {
	query, _, err := Update("reservations").Set("status", "confirmed").Where(squirrel.Eq{"id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE reservations SET status = $1 WHERE id = $2", query)

	query, _, err = Delete("product_units").Where(squirrel.Eq{"product_id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM product_units WHERE product_id = $1", query)
}
