package subgraph

import (
	"context"
	"strings"
)

const accountQuery = `
  query Account($id: ID!) {
    account(id: $id) {
      id
      asAccessManager { id }
      asAccessManaged { id }
      membership {
        id
        manager { asAccount { id } }
        role { id label asRole { id } }
      }
      targettedBy {
        id
        manager { asAccount { id } }
      }
    }
  }
`

// Account is what the access-control indexer knows about an address.
type Account struct {
	ID            string
	AccessManager string
	AccessManaged string
	Memberships   []Membership
	Targets       []Target
}

// Membership is a role held by the account on an access manager.
type Membership struct {
	ID        string
	Manager   string
	RoleID    string
	RoleLabel string
}

// Target records an access manager that governs the account.
type Target struct {
	ID      string
	Manager string
}

type wireRef struct {
	ID string `json:"id"`
}

type wireManagerRef struct {
	AsAccount *wireRef `json:"asAccount"`
}

func (m *wireManagerRef) address() string {
	if m == nil || m.AsAccount == nil {
		return ""
	}
	return m.AsAccount.ID
}

type wireAccount struct {
	ID              string   `json:"id"`
	AsAccessManager *wireRef `json:"asAccessManager"`
	AsAccessManaged *wireRef `json:"asAccessManaged"`
	Membership      []struct {
		ID      string          `json:"id"`
		Manager *wireManagerRef `json:"manager"`
		Role    *struct {
			ID     string   `json:"id"`
			Label  *string  `json:"label"`
			AsRole *wireRef `json:"asRole"`
		} `json:"role"`
	} `json:"membership"`
	TargettedBy []struct {
		ID      string          `json:"id"`
		Manager *wireManagerRef `json:"manager"`
	} `json:"targettedBy"`
}

// Account looks up an address. It returns nil without error when the indexer
// has never seen it.
func (c *Client) Account(ctx context.Context, address string) (*Account, error) {
	var data struct {
		Account *wireAccount `json:"account"`
	}
	vars := map[string]any{"id": strings.ToLower(address)}
	if err := c.Query(ctx, "Account", accountQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Account == nil {
		return nil, nil
	}

	w := data.Account
	acc := &Account{ID: w.ID}
	if w.AsAccessManager != nil {
		acc.AccessManager = w.AsAccessManager.ID
	}
	if w.AsAccessManaged != nil {
		acc.AccessManaged = w.AsAccessManaged.ID
	}
	for _, m := range w.Membership {
		membership := Membership{ID: m.ID, Manager: m.Manager.address()}
		if m.Role != nil {
			membership.RoleID = m.Role.ID
			switch {
			case m.Role.Label != nil && *m.Role.Label != "":
				membership.RoleLabel = *m.Role.Label
			case m.Role.AsRole != nil:
				membership.RoleLabel = m.Role.AsRole.ID
			}
		}
		acc.Memberships = append(acc.Memberships, membership)
	}
	for _, t := range w.TargettedBy {
		acc.Targets = append(acc.Targets, Target{ID: t.ID, Manager: t.Manager.address()})
	}
	return acc, nil
}
