package socials

import "context"

type Repo interface {
	// Upsert creates or replaces the connection for (UserID, Provider).
	Upsert(ctx context.Context, conn Connection) (Connection, error)
	// MergeScrapedData creates the connection or, when it exists, merges
	// conn.ScrapedData key by key into the stored data in one write and
	// updates ProviderID. Stored tokens are left alone.
	MergeScrapedData(ctx context.Context, conn Connection) (Connection, error)
	Get(ctx context.Context, userID, provider string) (Connection, error)
	ListByUser(ctx context.Context, userID string) ([]Connection, error)
}
