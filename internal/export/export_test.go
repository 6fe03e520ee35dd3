package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versus-rank/versus/internal/model"
)

func testRanking() model.Ranking {
	return model.Ranking{
		{Item: model.Item{Title: "Element A", Description: "This is element A", Image: "images/a.png"}, Index: 0, Wins: 2},
		{Item: model.Item{Title: "Element C"}, Index: 2, Wins: 1},
		{Item: model.Item{Title: "Element B"}, Index: 1, Wins: 0},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(testRanking())

	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Element A", rows[0].Title)
	assert.Equal(t, 2, rows[0].Wins)
	assert.Equal(t, 3, rows[2].Position)
	assert.Equal(t, "Element B", rows[2].Title)
}

func TestWriteFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.json")
	require.NoError(t, WriteFile(path, testRanking()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []Row
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Equal(t, Rows(testRanking()), rows)
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.csv")
	require.NoError(t, WriteFile(path, testRanking()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4) // header + 3 rows
	assert.Equal(t, []string{"position", "title", "description", "image", "wins"}, records[0])
	assert.Equal(t, []string{"1", "Element A", "This is element A", "images/a.png", "2"}, records[1])
	assert.Equal(t, []string{"3", "Element B", "", "", "0"}, records[3])
}

func TestWriteFile_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.parquet")
	require.NoError(t, WriteFile(path, testRanking()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)

	reader := parquet.NewGenericReader[Row](pf)
	defer func() {
		_ = reader.Close()
	}()

	rows := make([]Row, 3)
	n, err := reader.Read(rows)
	if n != 3 {
		require.NoError(t, err)
	}
	assert.Equal(t, Rows(testRanking()), rows[:n])
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	err := WriteFile(path, testRanking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
