// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "github.com/sudipto39/Shop-Xpress/internal/infra/config"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager)
// - owns env/config-resolved runtime settings
//
// Infra must NOT depend on handlers or routers.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
}

// NewInfra initializes shared infra.
// Firestore is strict (return error); Firebase/Auth, GCS and Secret
// Manager are best-effort (warn + continue) so a partially-configured
// environment still serves the catalog.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		projectID = strings.TrimSpace(cfg.ProjectID)
	}
	if projectID == "" {
		return nil, errors.New("di.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	var clientOpts []option.ClientOption
	if cred := strings.TrimSpace(cfg.CredentialsFile); cred != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cred))
		log.Printf("[di.infra] using credentials file for GCP clients")
	} else {
		log.Printf("[di.infra] using Application Default Credentials")
	}

	// 1) Firestore (required)
	fs, err := firestore.NewClient(ctx, projectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("di.infra: firestore client: %w", err)
	}
	inf.Firestore = fs

	// 2) Firebase Auth (best-effort; bearer auth disabled without it)
	{
		fbProject := strings.TrimSpace(cfg.FirebaseProjectID)
		if fbProject == "" {
			fbProject = projectID
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fbProject}, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase.NewApp failed: %v (auth disabled)", err)
		} else {
			inf.FirebaseApp = app
			auth, err := app.Auth(ctx)
			if err != nil {
				log.Printf("[di.infra] WARN: firebase Auth client failed: %v (auth disabled)", err)
			} else {
				inf.FirebaseAuth = auth
			}
		}
	}

	// 3) GCS (best-effort; admin image upload disabled without it)
	{
		gcs, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: storage.NewClient failed: %v (image upload disabled)", err)
		} else {
			inf.GCS = gcs
		}
	}

	// 4) Secret Manager (best-effort; falls back to env secrets)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: secretmanager.NewClient failed: %v (env secrets only)", err)
		} else {
			inf.SecretManager = sm
		}
	}

	log.Printf("[di.infra] initialized projectId=%s firestore=%t auth=%t gcs=%t sm=%t",
		projectID, inf.Firestore != nil, inf.FirebaseAuth != nil, inf.GCS != nil, inf.SecretManager != nil)

	return inf, nil
}

// RazorpayKeySecret resolves the gateway key secret: Secret Manager when a
// secret name is configured, env var otherwise (local dev).
func (inf *Infra) RazorpayKeySecret(ctx context.Context) (string, error) {
	if inf == nil || inf.Config == nil {
		return "", errors.New("di.infra: not initialized")
	}

	name := strings.TrimSpace(inf.Config.RazorpayKeySecretName)
	if name != "" && inf.SecretManager != nil {
		full := name
		if !strings.HasPrefix(full, "projects/") {
			full = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", inf.ProjectID, name)
		}
		res, err := inf.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: full,
		})
		if err != nil {
			return "", fmt.Errorf("di.infra: access razorpay secret: %w", err)
		}
		return strings.TrimSpace(string(res.GetPayload().GetData())), nil
	}

	return strings.TrimSpace(inf.Config.RazorpayKeySecret), nil
}

// Close releases owned clients.
func (inf *Infra) Close() error {
	if inf == nil {
		return nil
	}
	var first error
	if inf.SecretManager != nil {
		if err := inf.SecretManager.Close(); err != nil && first == nil {
			first = err
		}
	}
	if inf.GCS != nil {
		if err := inf.GCS.Close(); err != nil && first == nil {
			first = err
		}
	}
	if inf.Firestore != nil {
		if err := inf.Firestore.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
