package uploads

import "os"

// MediaConfig holds MinIO media-store connection configuration.
type MediaConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Bucket        string
	PublicBaseURL string
}

// LoadMediaConfig reads the media-store config from the environment.
func LoadMediaConfig() *MediaConfig {
	return &MediaConfig{
		Endpoint:      os.Getenv("MINIO_ENDPOINT"),
		AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:        os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:        getEnv("MINIO_BUCKET", "folioworks-media"),
		PublicBaseURL: os.Getenv("MINIO_PUBLIC_URL"),
	}
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
