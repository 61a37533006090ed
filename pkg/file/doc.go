// Package file stores sessions as files, either on the local filesystem or
// in S3 and S3-compatible object storage.
//
// LocalStore mirrors PHP's "files" save handler: one sess_<token> file per
// session in a single directory, written atomically through a temp file and
// rename. S3Store keeps one JSON object per session under a key prefix.
//
// Both stores only accept tokens that pass session.ValidToken, so a token can never
// escape the directory or prefix it is stored under.
//
//	local, err := file.NewLocalStore("/var/lib/sessiond")
//
//	remote, err := file.NewS3Store(ctx, file.S3Config{
//	    Bucket: "sessions",
//	    Region: "eu-central-1",
//	    Prefix: "prod/",
//	})
//
// S3 errors are classified into session.ErrSessionNotFound and the package
// sentinels (ErrAccessDenied, ErrBucketNotFound, ...).
package file
