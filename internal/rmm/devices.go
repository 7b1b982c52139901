package rmm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"kyber/internal/jsonutil"
)

// GetDevices fetches one page of a site's devices.
func (c *Client) GetDevices(ctx context.Context, siteUID string, page, max int) (*DevicesResponse, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"max":  {strconv.Itoa(max)},
	}
	body, err := c.get(ctx, "get_devices",
		fmt.Sprintf("/api/v2/site/%s/devices", siteUID), q)
	if err != nil {
		return nil, err
	}
	var out DevicesResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode devices"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchDevices searches the whole account by hostname fragment.
func (c *Client) SearchDevices(ctx context.Context, hostname string) (*DevicesResponse, error) {
	q := url.Values{
		"hostname": {hostname},
		"max":      {"50"},
	}
	body, err := c.get(ctx, "search_devices", "/api/v2/account/devices", q)
	if err != nil {
		return nil, err
	}
	var out DevicesResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode device search"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeviceOpenAlerts fetches a device's open alerts.
func (c *Client) GetDeviceOpenAlerts(ctx context.Context, deviceUID string) ([]Alert, error) {
	body, err := c.get(ctx, "get_device_open_alerts",
		fmt.Sprintf("/api/v2/device/%s/alerts/open", deviceUID), nil)
	if err != nil {
		return nil, err
	}
	var out OpenAlertsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode device alerts"); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

// GetDeviceSoftware fetches the audited software inventory for a device.
func (c *Client) GetDeviceSoftware(ctx context.Context, deviceUID string) ([]SoftwareItem, error) {
	body, err := c.get(ctx, "get_device_software",
		fmt.Sprintf("/api/v2/audit/device/%s/software", deviceUID), nil)
	if err != nil {
		return nil, err
	}
	var out SoftwareResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode software"); err != nil {
		return nil, err
	}
	return out.Software, nil
}

// SetDeviceUDF writes a single user-defined field on a device. Fields are
// addressed by their 1-based slot number.
func (c *Client) SetDeviceUDF(ctx context.Context, deviceUID string, slot int, value string) error {
	payload := map[string]string{
		fmt.Sprintf("udf%d", slot): value,
	}
	_, err := c.post(ctx, "set_device_udf",
		fmt.Sprintf("/api/v2/device/%s/udf", deviceUID), payload)
	return err
}
