package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embermetrics/fire-report-service/internal/config"
	"github.com/embermetrics/fire-report-service/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFireHistory(t *testing.T) {
	t.Run("parses rows and skips blank years", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "fires.csv",
			"OBJECTID,YEAR_,CAUSE,GIS_ACRES\n"+
				"1,2017,1,1200.5\n"+
				"2,,14,300\n"+
				"3,2018,9,80.25\n"+
				"4,0,1,10\n")

		records, err := LoadFireHistory(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, domain.FireRecord{Year: 2017, Cause: 1, BurnedAcres: 1200.5}, records[0])
		assert.Equal(t, domain.FireRecord{Year: 2018, Cause: 9, BurnedAcres: 80.25}, records[1])
	})

	t.Run("skips rows with unparsable acreage", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "fires.csv",
			"YEAR_,CAUSE,GIS_ACRES\n2017,1,not-a-number\n2018,1,50\n")

		records, err := LoadFireHistory(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 2018, records[0].Year)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "fires.csv", "YEAR_,GIS_ACRES\n2017,50\n")

		_, err := LoadFireHistory(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFireHistory(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}

func TestLoadClimate(t *testing.T) {
	t.Run("reads all files in directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "2018.csv",
			"date,bi,fm100\n2018-01-01,22.5,14.1\n2018-01-02,24,13.8\n")
		writeFile(t, dir, "2017.csv",
			"date,bi,fm100\n2017-12-31,30,12\n")

		obs, err := LoadClimate(dir)
		require.NoError(t, err)
		require.Len(t, obs, 3)

		// Files are read in name order.
		assert.Equal(t, time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), obs[0].Date)
		assert.Equal(t, 30.0, obs[0].BurnIndex)
		assert.Equal(t, 12.0, obs[0].DeadFuelMoisture)
		assert.Equal(t, 22.5, obs[1].BurnIndex)
	})

	t.Run("skips unparsable dates and values", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "mixed.csv",
			"date,bi,fm100\nnot-a-date,1,1\n2018-01-01,bad,1\n2018-01-02,20,10\n")

		obs, err := LoadClimate(dir)
		require.NoError(t, err)
		require.Len(t, obs, 1)
		assert.Equal(t, 20.0, obs[0].BurnIndex)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadClimate(t.TempDir())
		require.Error(t, err)
	})
}

func TestLoadHomes(t *testing.T) {
	t.Run("full columns", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "burnt.csv",
			"address,lat,lon,zestimate\n"+
				"1668 Hopper Ave,38.4627,-122.7561,450000.4\n"+
				"1672 Hopper Ave,38.4628,-122.7560,512000\n")

		records, err := LoadHomes(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "1668 Hopper Ave", records[0].Address)
		assert.Equal(t, 38.4627, records[0].Lat)
		assert.Equal(t, -122.7561, records[0].Lon)
		assert.Equal(t, 450000.4, records[0].AssessedValue)
	})

	t.Run("address-only file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "recovered.csv",
			"address\n1668 Hopper Ave\n\n1680 Hopper Ave\n")

		records, err := LoadHomes(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Zero(t, records[0].AssessedValue)
		assert.Equal(t, "1680 Hopper Ave", records[1].Address)
	})

	t.Run("missing address column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "bad.csv", "lat,lon\n1,2\n")

		_, err := LoadHomes(path)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	climateDir := filepath.Join(dir, "nfdrs")
	require.NoError(t, os.Mkdir(climateDir, 0o755))

	fires := writeFile(t, dir, "fire_history.csv",
		"YEAR_,CAUSE,GIS_ACRES\n2017,1,100\n2018,9,200\n")
	writeFile(t, climateDir, "2018.csv",
		"date,bi,fm100\n2018-01-01,22,14\n")
	destroyed := writeFile(t, dir, "burnt_homes.csv",
		"address,lat,lon,zestimate\n1668 Hopper Ave,38.46,-122.75,450000\n")
	recovered := writeFile(t, dir, "recovered_homes.csv",
		"address\n1668 Hopper Ave\n")

	data, err := LoadAll(config.DataConfig{
		FiresPath:     fires,
		ClimateDir:    climateDir,
		DestroyedPath: destroyed,
		RecoveredPath: recovered,
	}, slog.Default())
	require.NoError(t, err)

	assert.Len(t, data.Fires, 2)
	assert.Len(t, data.Climate, 1)
	assert.Len(t, data.Destroyed, 1)
	assert.Len(t, data.Recovered, 1)
	assert.False(t, data.Empty())
}

func TestLoadAll_PropagatesErrors(t *testing.T) {
	_, err := LoadAll(config.DataConfig{
		FiresPath:     filepath.Join(t.TempDir(), "missing.csv"),
		ClimateDir:    t.TempDir(),
		DestroyedPath: "x",
		RecoveredPath: "x",
	}, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load fire history")
}