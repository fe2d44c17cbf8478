package updater

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticService(u *Update, err error) Service {
	return ServiceFunc(func(context.Context, string) (*Update, error) { return u, err })
}

func TestChecker_Found(t *testing.T) {
	c := NewChecker(staticService(&Update{Version: "1.4.0", Notes: "Neu"}, nil), "1.3.0")

	res, err := c.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Available)
	require.NotNil(t, res.Version)
	assert.Equal(t, "1.4.0", *res.Version)
	require.NotNil(t, res.Body)
	assert.Equal(t, "Neu", *res.Body)
	assert.Equal(t, "1.3.0", res.CurrentVersion)
}

func TestChecker_NotFound(t *testing.T) {
	for name, svc := range map[string]Service{
		"nil update":  staticService(nil, nil),
		"sentinel":    staticService(nil, ErrNoUpdateAvailable),
		"disabled":    Disabled,
		"nil service": nil,
	} {
		t.Run(name, func(t *testing.T) {
			res, err := NewChecker(svc, "1.3.0").CheckForUpdate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Result{Available: false, CurrentVersion: "1.3.0"}, res)
		})
	}
}

func TestChecker_Failure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	c := NewChecker(staticService(&Update{Version: "9.9.9"}, cause), "1.3.0")

	res, err := c.CheckForUpdate(context.Background())
	require.Error(t, err)

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, cause.Error(), checkErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.False(t, res.Available, "a failure is never reported as a result")
}

func TestChecker_CurrentVersionFixed(t *testing.T) {
	var seen []string
	svc := ServiceFunc(func(_ context.Context, current string) (*Update, error) {
		seen = append(seen, current)
		return nil, nil
	})
	c := NewChecker(svc, "2.0.0")

	_, _ = c.CheckForUpdate(context.Background())
	_, _ = c.CheckForUpdate(context.Background())
	assert.Equal(t, []string{"2.0.0", "2.0.0"}, seen)
	assert.Equal(t, "2.0.0", c.CurrentVersion())
}

func TestChecker_Timeout(t *testing.T) {
	svc := ServiceFunc(func(ctx context.Context, _ string) (*Update, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := NewChecker(svc, "1.0.0", WithTimeout(10*time.Millisecond))

	_, err := c.CheckForUpdate(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChecker_Observer(t *testing.T) {
	var outcomes []Outcome
	obs := WithOutcomeObserver(func(o Outcome) { outcomes = append(outcomes, o) })

	_, _ = NewChecker(staticService(&Update{Version: "2.0.0"}, nil), "1.0.0", obs).CheckForUpdate(context.Background())
	_, _ = NewChecker(staticService(nil, nil), "1.0.0", obs).CheckForUpdate(context.Background())
	_, _ = NewChecker(staticService(nil, errors.New("x")), "1.0.0", obs).CheckForUpdate(context.Background())

	assert.Equal(t, []Outcome{OutcomeAvailable, OutcomeCurrent, OutcomeError}, outcomes)
}

func TestChecker_CheckAsync(t *testing.T) {
	c := NewChecker(staticService(&Update{Version: "2.0.0"}, nil), "1.0.0")

	done := make(chan Result, 1)
	c.CheckAsync(context.Background(), func(r Result, err error) {
		assert.NoError(t, err)
		done <- r
	})

	select {
	case r := <-done:
		assert.True(t, r.Available)
	case <-time.After(2 * time.Second):
		t.Fatal("async check did not finish")
	}
}

func TestResult_JSON(t *testing.T) {
	v, body := "1.4.0", "notes"
	data, err := json.Marshal(Result{Available: true, Version: &v, CurrentVersion: "1.3.0", Body: &body})
	require.NoError(t, err)
	assert.JSONEq(t, `{"available":true,"version":"1.4.0","current_version":"1.3.0","body":"notes"}`, string(data))

	data, err = json.Marshal(Result{CurrentVersion: "1.3.0"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"available":false,"version":null,"current_version":"1.3.0","body":null}`, string(data))
}
