package rmm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"kyber/internal/jsonutil"
)

// GetComponents fetches one page of the account component library.
func (c *Client) GetComponents(ctx context.Context, page int) (*ComponentsResponse, error) {
	var q url.Values
	if page > 0 {
		q = url.Values{"page": {strconv.Itoa(page)}}
	}
	body, err := c.get(ctx, "get_components", "/api/v2/account/components", q)
	if err != nil {
		return nil, err
	}
	var out ComponentsResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode components"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunQuickJob launches a component on a device and returns the job uid.
func (c *Client) RunQuickJob(ctx context.Context, deviceUID string, req QuickJobRequest) (*QuickJobResponse, error) {
	body, err := c.put(ctx, "run_quick_job",
		fmt.Sprintf("/api/v2/device/%s/quickjob", deviceUID), req)
	if err != nil {
		return nil, err
	}
	var out QuickJobResponse
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode quick job"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobResult fetches the outcome of a job on one device.
func (c *Client) GetJobResult(ctx context.Context, jobUID, deviceUID string) (*JobResult, error) {
	body, err := c.get(ctx, "get_job_result",
		fmt.Sprintf("/api/v2/job/%s/results/%s", jobUID, deviceUID), nil)
	if err != nil {
		return nil, err
	}
	var out JobResult
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode job result"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobStdOut fetches captured stdout for each component of a job.
func (c *Client) GetJobStdOut(ctx context.Context, jobUID, deviceUID string) ([]JobStdOutput, error) {
	return c.jobOutput(ctx, "get_job_stdout", jobUID, deviceUID, "stdout")
}

// GetJobStdErr fetches captured stderr for each component of a job.
func (c *Client) GetJobStdErr(ctx context.Context, jobUID, deviceUID string) ([]JobStdOutput, error) {
	return c.jobOutput(ctx, "get_job_stderr", jobUID, deviceUID, "stderr")
}

func (c *Client) jobOutput(ctx context.Context, op, jobUID, deviceUID, stream string) ([]JobStdOutput, error) {
	body, err := c.get(ctx, op,
		fmt.Sprintf("/api/v2/job/%s/results/%s/%s", jobUID, deviceUID, stream), nil)
	if err != nil {
		return nil, err
	}
	var out []JobStdOutput
	if err := jsonutil.UnmarshalWithContext(body, &out, "decode job output"); err != nil {
		return nil, err
	}
	return out, nil
}

// RebootDevice schedules an immediate reboot of a device. Some platform
// versions answer with an empty body on success.
func (c *Client) RebootDevice(ctx context.Context, deviceUID string) error {
	_, err := c.post(ctx, "reboot_device",
		fmt.Sprintf("/api/v2/device/%s/reboot", deviceUID), nil)
	return err
}
