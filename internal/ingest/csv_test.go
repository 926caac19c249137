package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/atmos-data/windrose.report/internal/monitoring"
	"github.com/atmos-data/windrose.report/internal/wind"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func TestParsePortugueseHeaders(t *testing.T) {
	input := `estacao,data,direcao,velocidade,altura
EST01,2025-06-01 12:00:00,270.5,7.2,10
EST01,2025-06-01 12:10:00,180,3.4,
`

	obs, drops, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if drops.Total() != 0 {
		t.Fatalf("expected no drops, got %+v", drops)
	}

	height := 10.0
	want := []wind.Observation{
		{
			Station:      "EST01",
			Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			DirectionDeg: 270.5,
			SpeedMps:     7.2,
			HeightM:      &height,
		},
		{
			Station:      "EST01",
			Timestamp:    time.Date(2025, 6, 1, 12, 10, 0, 0, time.UTC),
			DirectionDeg: 180,
			SpeedMps:     3.4,
		},
	}

	if diff := cmp.Diff(want, obs); diff != "" {
		t.Errorf("parsed observations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnglishHeaders(t *testing.T) {
	input := `station,timestamp,direction_deg,speed_mps,height_m
WND7,2025-03-15T08:30:00Z,45,12.1,80
`

	obs, _, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if obs[0].Station != "WND7" || obs[0].DirectionDeg != 45 || obs[0].SpeedMps != 12.1 {
		t.Errorf("unexpected observation %+v", obs[0])
	}
	if !obs[0].Timestamp.Equal(time.Date(2025, 3, 15, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", obs[0].Timestamp)
	}
}

func TestParseDropCounting(t *testing.T) {
	input := `estacao,data,direcao,velocidade
EST01,2025-06-01 12:00:00,270,7.2
,2025-06-01 12:10:00,180,3.4
EST01,not-a-date,180,3.4
EST01,2025-06-01 12:30:00,north,3.4
EST01,2025-06-01 12:40:00,180,fast
EST01,2025-06-01 12:50:00,,3.4
`

	obs, drops, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(obs) != 1 {
		t.Errorf("expected 1 surviving observation, got %d", len(obs))
	}
	if drops.MissingField != 2 {
		t.Errorf("MissingField = %d, want 2", drops.MissingField)
	}
	if drops.BadTimestamp != 1 {
		t.Errorf("BadTimestamp = %d, want 1", drops.BadTimestamp)
	}
	if drops.InvalidDirection != 1 {
		t.Errorf("InvalidDirection = %d, want 1", drops.InvalidDirection)
	}
	if drops.InvalidSpeed != 1 {
		t.Errorf("InvalidSpeed = %d, want 1", drops.InvalidSpeed)
	}
}

func TestParseCommaDecimals(t *testing.T) {
	// Some station loggers emit comma decimal separators; the fields are
	// semicolon-free CSV so the comma only appears inside quotes.
	input := `estacao,data,direcao,velocidade
EST01,2025-06-01 12:00:00,"270,5","7,2"
`

	obs, drops, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if drops.Total() != 0 {
		t.Fatalf("expected no drops, got %+v", drops)
	}
	if len(obs) != 1 || obs[0].DirectionDeg != 270.5 || obs[0].SpeedMps != 7.2 {
		t.Errorf("unexpected observations %+v", obs)
	}
}

func TestParseMissingRequiredColumn(t *testing.T) {
	input := `estacao,data,velocidade
EST01,2025-06-01 12:00:00,7.2
`

	if _, _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for missing direction column")
	}
}

func TestParseEmptyTable(t *testing.T) {
	if _, _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseDateLayouts(t *testing.T) {
	layouts := []string{
		"2025-06-01 12:00:00",
		"2025-06-01T12:00:00",
		"01/06/2025 12:00:00",
		"01/06/2025 12:00",
		"2025-06-01",
	}

	for _, raw := range layouts {
		input := "estacao,data,direcao,velocidade\nEST01," + raw + ",90,5\n"
		obs, drops, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed for %q: %v", raw, err)
		}
		if drops.BadTimestamp != 0 || len(obs) != 1 {
			t.Errorf("timestamp %q not accepted (drops=%+v)", raw, drops)
		}
	}
}
