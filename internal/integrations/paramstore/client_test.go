package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
}

func (f *fakeAPI) GetParameter(_ context.Context, _ *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func TestGetParameter_HappyPath(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("p"), Value: strPtr(`mongodb://db:27017`),
	}}}
	client, err := New(api)
	require.NoError(t, err)
	v, err := client.GetParameter(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, `mongodb://db:27017`, v)
}

func TestGetParameter_HappyPath_SecureString(t *testing.T) {
	typeStr := "SecureString"
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("p"), Value: strPtr(`mongodb://db:27017`), Type: types.ParameterType(typeStr),
	}}}
	client, err := New(api)
	require.NoError(t, err)
	v, err := client.GetParameter(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, `mongodb://db:27017`, v)
}

func TestGetParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestGetParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	api := &fakeAPI{}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

type fakeGetter struct {
	val   string
	err   error
	calls int
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.val, f.err
}

func TestResolve_ValueWins(t *testing.T) {
	g := &fakeGetter{val: "mongodb://from-ssm"}
	v, err := Resolve(context.Background(), g, " mongodb://local ", "/portfolio/mongodb-uri")
	require.NoError(t, err)
	require.Equal(t, "mongodb://local", v)
	require.Zero(t, g.calls)
}

func TestResolve_FallsBackToParameter(t *testing.T) {
	g := &fakeGetter{val: "mongodb+srv://from-ssm\n"}
	v, err := Resolve(context.Background(), g, "", "/portfolio/mongodb-uri")
	require.NoError(t, err)
	require.Equal(t, "mongodb+srv://from-ssm", v)
	require.Equal(t, 1, g.calls)
}

func TestResolve_NothingConfigured(t *testing.T) {
	_, err := Resolve(context.Background(), &fakeGetter{}, "", " ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "neither")
}

func TestResolve_NilGetter(t *testing.T) {
	_, err := Resolve(context.Background(), nil, "", "/portfolio/mongodb-uri")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil")
}

func TestResolve_EmptyParameter(t *testing.T) {
	_, err := Resolve(context.Background(), &fakeGetter{val: "  "}, "", "/portfolio/mongodb-uri")
	require.Error(t, err)
	require.Contains(t, err.Error(), "is empty")
}

func TestResolve_GetterError(t *testing.T) {
	_, err := Resolve(context.Background(), &fakeGetter{err: errors.New("AccessDeniedException")}, "", "/portfolio/mongodb-uri")
	require.ErrorContains(t, err, "AccessDeniedException")
}
