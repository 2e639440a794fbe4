package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushService_RegisterDevice(t *testing.T) {
	ctx := context.Background()
	store := NewDietStore(newTestDB(t))
	sns := &fakeSNS{}
	push := NewPushService(store, sns, "arn:app")

	dev, err := push.RegisterDevice(ctx, RegisterDeviceReq{Platform: "iOS", Token: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ios", dev.Platform)
	assert.Equal(t, "arn:aws:sns:endpoint/abc", dev.EndpointARN)
	assert.NotEqual(t, "abc", dev.TokenHash)

	_, err = push.RegisterDevice(ctx, RegisterDeviceReq{Platform: "android", Token: "abc"})
	require.NoError(t, err)
	devices, err := store.EnabledDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1, "same token registers once")
	assert.Equal(t, "android", devices[0].Platform)

	_, err = push.RegisterDevice(ctx, RegisterDeviceReq{Platform: "windows", Token: "abc"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPushService_Disabled(t *testing.T) {
	ctx := context.Background()
	push := NewPushService(NewDietStore(newTestDB(t)), nil, "")
	assert.False(t, push.Enabled())

	_, err := push.RegisterDevice(ctx, RegisterDeviceReq{Platform: "android", Token: "abc"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	push.PushAll(ctx, "t", "b", nil)
}

func TestPushService_PushAll(t *testing.T) {
	ctx := context.Background()
	store := NewDietStore(newTestDB(t))
	sns := &fakeSNS{}
	push := NewPushService(store, sns, "arn:app")
	for _, tok := range []string{"a", "b"} {
		_, err := push.RegisterDevice(ctx, RegisterDeviceReq{Platform: "android", Token: tok})
		require.NoError(t, err)
	}

	push.PushAll(ctx, "New grocery plan", "Week 18", map[string]string{"planId": "p1"})
	require.Len(t, sns.published, 2)
	assert.Contains(t, aws.ToString(sns.published[0].Message), "Week 18")
}
