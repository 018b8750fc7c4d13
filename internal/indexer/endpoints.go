package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"treasury-dashboard/internal/wire"
)

// ErrUnsupportedAction is returned by ActionPath for actions without a
// dedicated endpoint.
var ErrUnsupportedAction = errors.New("unsupported action endpoint")

// Actions with a dedicated transaction endpoint.
var actionEndpoints = map[string]string{
	"fund":     "/api/fund",
	"disburse": "/api/disburse",
	"withdraw": "/api/withdraw",
}

// ActionPath returns the endpoint path for an action-filtered listing.
func ActionPath(action string) (string, error) {
	path, ok := actionEndpoints[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}
	return path, nil
}

// Stats returns the landing counters, or nil.
func (c *Client) Stats(ctx context.Context) wire.Record {
	return c.fetchObject(ctx, "/api/stats", "/api/stats")
}

// Balance returns the aggregate treasury balance, or nil.
func (c *Client) Balance(ctx context.Context) wire.Record {
	return c.fetchObject(ctx, "/api/balance", "/api/balance")
}

// Transactions lists transactions, newest first.
func (c *Client) Transactions(ctx context.Context, q TransactionQuery) []wire.Record {
	return c.fetchCollection(ctx, "/api/transactions", "/api/transactions", q.Params(), "transactions")
}

// Transaction returns one transaction by hash, or nil when unknown.
func (c *Client) Transaction(ctx context.Context, hash string) wire.Record {
	if strings.TrimSpace(hash) == "" {
		return nil
	}
	return c.fetchObject(ctx, "/api/transactions/{hash}", "/api/transactions/"+url.PathEscape(hash))
}

// Projects lists funded projects.
func (c *Client) Projects(ctx context.Context, q ProjectQuery) []wire.Record {
	return c.fetchCollection(ctx, "/api/projects", "/api/projects", q.Params(), "projects")
}

// Project returns the composite project detail, or nil when unknown.
func (c *Client) Project(ctx context.Context, id string) wire.Record {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return c.fetchObject(ctx, "/api/projects/{id}", "/api/projects/"+url.PathEscape(id))
}

// ProjectMilestones lists one project's milestones.
func (c *Client) ProjectMilestones(ctx context.Context, id string) []wire.Record {
	if strings.TrimSpace(id) == "" {
		return []wire.Record{}
	}
	return c.fetchCollection(ctx, "/api/projects/{id}/milestones",
		"/api/projects/"+url.PathEscape(id)+"/milestones", nil, "milestones")
}

// ProjectEvents lists one project's events.
func (c *Client) ProjectEvents(ctx context.Context, id string) []wire.Record {
	if strings.TrimSpace(id) == "" {
		return []wire.Record{}
	}
	return c.fetchCollection(ctx, "/api/projects/{id}/events",
		"/api/projects/"+url.PathEscape(id)+"/events", nil, "events")
}

// TreasuryAddresses lists treasury script addresses.
func (c *Client) TreasuryAddresses(ctx context.Context) []wire.Record {
	return c.fetchCollection(ctx, "/api/treasury-contracts", "/api/treasury-contracts", nil,
		"treasury_contracts", "addresses")
}

// VendorContracts lists vendor contract addresses.
func (c *Client) VendorContracts(ctx context.Context) []wire.Record {
	return c.fetchCollection(ctx, "/api/vendor-contracts", "/api/vendor-contracts", nil, "vendor_contracts")
}

// FundFlows lists fund movements.
func (c *Client) FundFlows(ctx context.Context, q PageQuery) []wire.Record {
	return c.fetchCollection(ctx, "/api/fund-flows", "/api/fund-flows", q.Params(), "fund_flows", "flows")
}

// ActionTransactions lists transactions from a dedicated action endpoint
// (fund, disburse, withdraw). Other actions yield an empty list.
func (c *Client) ActionTransactions(ctx context.Context, action string, q PageQuery) []wire.Record {
	path, err := ActionPath(action)
	if err != nil {
		return []wire.Record{}
	}
	return c.fetchCollection(ctx, path, path, q.Params(), "transactions")
}

// Events lists TOM events.
func (c *Client) Events(ctx context.Context, q EventQuery) []wire.Record {
	return c.fetchCollection(ctx, "/api/events", "/api/events", q.Params(), "events")
}

// Utxos lists unspent outputs at treasury addresses.
func (c *Client) Utxos(ctx context.Context) []wire.Record {
	return c.fetchCollection(ctx, "/api/utxos", "/api/utxos", nil, "utxos")
}

// Milestones lists milestones across all projects.
func (c *Client) Milestones(ctx context.Context) []wire.Record {
	return c.fetchCollection(ctx, "/api/milestones", "/api/milestones", nil, "milestones")
}

// Treasury lists treasury instances. The oldest schema returns a single
// object here.
func (c *Client) Treasury(ctx context.Context) []wire.Record {
	return c.fetchOneOrMany(ctx, "/api/treasury", "/api/treasury", "treasury_contracts", "instances")
}

// Health calls the API's /health endpoint and returns its body text.
// Unlike the data reads it reports failure to the caller.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/health", "/health", nil)
	if err != nil {
		return "", fmt.Errorf("health check %s: %w", c.baseURL, err)
	}
	return strings.TrimSpace(string(body)), nil
}
