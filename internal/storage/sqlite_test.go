package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/compulsive-charlie/internal/director"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recap(score, steps int) director.Recap {
	return director.Recap{
		Score:          score,
		Steps:          steps,
		SchedulePoints: steps / 2,
		MaxCombo:       4,
		Hits:           score % 100,
		Misses:         3,
		Height:         7,
		Energy:         5,
		Emotions:       emotion.New(12, 3, 0),
		Activities:     []string{"Sleep In", "Walk", "Go To Bed"},
		Done:           true,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openTemp(t)
	want := recap(312, 10)

	runID, err := store.SaveRun(42, want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", runID, err)
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Seed != 42 || got.RunID != runID {
		t.Errorf("record = %+v", got)
	}
	if !reflect.DeepEqual(got.Recap, want) {
		t.Errorf("recap round trip:\n got %+v\nwant %+v", got.Recap, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTemp(t)
	if _, err := store.RunByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, expected ErrNotFound", err)
	}
}

func TestTopAndRecentRuns(t *testing.T) {
	store := openTemp(t)
	for _, score := range []int{100, 350, 50, 200} {
		if _, err := store.SaveRun(1, recap(score, 5)); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	var scores []int
	for _, r := range top {
		scores = append(scores, r.Recap.Score)
	}
	if !reflect.DeepEqual(scores, []int{350, 200, 100}) {
		t.Errorf("top scores = %v", scores)
	}

	recent, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 4 || recent[0].Recap.Score != 200 {
		t.Errorf("recent runs should be newest first, got %d runs", len(recent))
	}
}

func TestHighScoreAndStats(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore()
	if err != nil || high != 0 {
		t.Errorf("empty HighScore() = %d, %v", high, err)
	}
	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if st.Runs != 0 || !st.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", st)
	}

	unfinished := recap(80, 4)
	unfinished.Done = false
	for _, r := range []director.Recap{recap(300, 10), recap(120, 6), unfinished} {
		if _, err := store.SaveRun(0, r); err != nil {
			t.Fatal(err)
		}
	}

	high, err = store.HighScore()
	if err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}

	st, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.Finished != 2 {
		t.Errorf("runs = %d, finished = %d", st.Runs, st.Finished)
	}
	if st.LongestRun != 10 || st.BestCombo != 4 {
		t.Errorf("longest = %d, best combo = %d", st.LongestRun, st.BestCombo)
	}
	if st.AvgScore < 166 || st.AvgScore > 167 {
		t.Errorf("avg = %v", st.AvgScore)
	}
	// 5+3+2 schedule points over 20 steps
	if st.OnSchedulePct != 50 {
		t.Errorf("on schedule = %v%%", st.OnSchedulePct)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTemp(t)
	if _, err := store.SaveRun(0, recap(10, 1)); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.TopRuns(10)
	if err != nil || len(runs) != 0 {
		t.Errorf("runs after clear = %d, %v", len(runs), err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(0, recap(99, 3)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore(); high != 99 {
		t.Errorf("HighScore() after reopen = %d", high)
	}
}
