package rmm

import (
	"context"
	"fmt"

	"kyber/internal/jsonutil"
)

// GetSiteVariables fetches all key-value variables attached to a site.
func (c *Client) GetSiteVariables(ctx context.Context, siteUID string) ([]SiteVariable, error) {
	body, err := c.get(ctx, "get_site_variables",
		fmt.Sprintf("/api/v2/site/%s/variables", siteUID), nil)
	if err != nil {
		return nil, err
	}
	var out SiteVariablesResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode site variables"); err != nil {
		return nil, err
	}
	return out.Variables, nil
}

// CreateSiteVariable creates a variable. Some platform versions return an
// empty body on success, in which case the request values are echoed back.
func (c *Client) CreateSiteVariable(ctx context.Context, siteUID string, req CreateVariableRequest) (*SiteVariable, error) {
	body, err := c.put(ctx, "create_site_variable",
		fmt.Sprintf("/api/v2/site/%s/variable", siteUID), req)
	if err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return &SiteVariable{Name: req.Name, Value: req.Value, Masked: req.Masked}, nil
	}
	var out SiteVariable
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode created variable"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSiteVariable updates a variable by id, with the same empty-body
// tolerance as CreateSiteVariable.
func (c *Client) UpdateSiteVariable(ctx context.Context, siteUID string, variableID int, req UpdateVariableRequest) (*SiteVariable, error) {
	body, err := c.post(ctx, "update_site_variable",
		fmt.Sprintf("/api/v2/site/%s/variable/%d", siteUID, variableID), req)
	if err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return &SiteVariable{ID: variableID, Name: req.Name, Value: req.Value}, nil
	}
	var out SiteVariable
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode updated variable"); err != nil {
		return nil, err
	}
	return &out, nil
}

func emptyBody(body []byte) bool {
	s := string(body)
	return s == "" || s == "null"
}
