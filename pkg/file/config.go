package file

// Config selects where file based stores keep sessions.
type Config struct {
	// Dir is the directory LocalStore writes sess_<token> files to
	Dir string `env:"SESSION_FILES_DIR" envDefault:"./var/sessions" yaml:"dir"`

	S3 S3Config `yaml:"s3"`
}

// S3Config contains configuration for S3 storage.
type S3Config struct {
	Bucket         string `env:"S3_BUCKET" yaml:"bucket"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1" yaml:"region"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID" yaml:"access_key_id"`
	SecretKey      string `env:"S3_SECRET_KEY" yaml:"secret_key"`
	Endpoint       string `env:"S3_ENDPOINT" yaml:"endpoint"` // for S3-compatible services
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false" yaml:"force_path_style"` // for MinIO and friends
	Prefix         string `env:"S3_SESSION_PREFIX" envDefault:"sessions/" yaml:"prefix"`
}
