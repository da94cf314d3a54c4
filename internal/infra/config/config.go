// internal/infra/config/config.go
package config

import "os"

// Config holds environment-driven settings for the whole application.
type Config struct {
	Port string

	// GCP
	ProjectID       string
	CredentialsFile string

	// Firestore / Firebase may live in a different project than the default
	// one in some deployments, so they can be overridden individually.
	FirestoreProjectID string
	FirebaseProjectID  string

	// Product image bucket (admin upload).
	ProductImageBucket string

	// Razorpay
	RazorpayKeyID string
	// Secret Manager secret id holding the Razorpay key secret.
	// If empty, RAZORPAY_KEY_SECRET is read directly from env (local dev).
	RazorpayKeySecretName string
	RazorpayKeySecret     string

	// SendGrid (order confirmation mail; optional)
	SendGridAPIKey string
	MailFrom       string

	// CORS
	AllowedOrigin string
}

// Load reads configuration from environment variables.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")
	if defaultProject == "" {
		defaultProject = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		ProjectID:       defaultProject,
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID: getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirebaseProjectID:  getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		ProductImageBucket: os.Getenv("PRODUCT_IMAGE_BUCKET"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecretName: os.Getenv("RAZORPAY_KEY_SECRET_NAME"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "no-reply@shop-xpress.example"),

		AllowedOrigin: getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
