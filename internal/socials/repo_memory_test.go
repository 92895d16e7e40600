package socials

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryRepoConcurrentMergesKeepEveryKey(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.MergeScrapedData(ctx, Connection{
				ID:          fmt.Sprintf("id-%d", i),
				UserID:      "u1",
				Provider:    ProviderGitHub,
				ProviderID:  "octocat",
				ScrapedData: map[string]any{fmt.Sprintf("key-%d", i): i},
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				t.Errorf("MergeScrapedData: %v", err)
			}
		}(i)
	}
	wg.Wait()

	conn, err := repo.Get(ctx, "u1", ProviderGitHub)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(conn.ScrapedData) != 20 {
		t.Fatalf("expected 20 merged keys, got %d: %+v", len(conn.ScrapedData), conn.ScrapedData)
	}
}

func TestMemoryRepoMergeKeepsTokensAndIdentity(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)

	if _, err := repo.Upsert(ctx, Connection{
		ID: "c1", UserID: "u1", Provider: ProviderGitHub, ProviderID: "old",
		AccessToken: "tok", ScrapedData: map[string]any{"profile": "p"}, CreatedAt: created,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := repo.MergeScrapedData(ctx, Connection{
		ID: "c2", UserID: "u1", Provider: ProviderGitHub, ProviderID: "octocat",
		ScrapedData: map[string]any{"repositories": "r"}, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("MergeScrapedData: %v", err)
	}
	if got.ID != "c1" || !got.CreatedAt.Equal(created) || got.AccessToken != "tok" || got.ProviderID != "octocat" {
		t.Fatalf("unexpected merged connection: %+v", got)
	}
	if got.ScrapedData["profile"] != "p" || got.ScrapedData["repositories"] != "r" {
		t.Fatalf("unexpected scraped data: %+v", got.ScrapedData)
	}
}
