package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"familydiet/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the subset of the SNS client used for device push.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	store       *DietStore
	sns         SNSAPI
	platformArn string
}

// NewPushService returns a service that no-ops when sns is nil.
func NewPushService(store *DietStore, sns SNSAPI, platformArn string) *PushService {
	return &PushService{store: store, sns: sns, platformArn: platformArn}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) Enabled() bool { return p.sns != nil && p.platformArn != "" }

func (p *PushService) RegisterDevice(ctx context.Context, req RegisterDeviceReq) (*models.HouseholdDevice, error) {
	platform := strings.ToLower(req.Platform)
	if platform != "android" && platform != "ios" {
		return nil, invalidf("unknown platform %q", req.Platform)
	}
	if !p.Enabled() {
		return nil, ErrNotConfigured
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(req.Token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.HouseholdDevice{
		Platform:    platform,
		TokenHash:   tokenHash(req.Token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	if err := p.store.UpsertDevice(ctx, dev); err != nil {
		return nil, err
	}
	return dev, nil
}

// PushAll is best effort: failures are logged, never returned.
func (p *PushService) PushAll(ctx context.Context, title, body string, data map[string]string) {
	if !p.Enabled() {
		return
	}
	devices, err := p.store.EnabledDevices(ctx)
	if err != nil {
		slog.Warn("push: list devices", "err", err)
		return
	}
	if len(devices) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})
	for _, d := range devices {
		if _, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		}); err != nil {
			slog.Warn("push: publish", "endpoint", d.EndpointARN, "err", err)
		}
	}
}
