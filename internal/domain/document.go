package domain

// Storage backend types configured on a storage_backend row.
const (
	BackendTypeS3         = "amazon_s3"
	BackendTypeFilesystem = "filesystem"
)

// DocumentFile is a storage_file metadata row. The bytes themselves live in
// the backend referenced by BackendID.
type DocumentFile struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	RelativePath  string `json:"relative_path"`
	FileSize      int64  `json:"file_size"`
	HumanFileSize string `json:"human_file_size"`
	Checksum      string `json:"checksum"`
	Filename      string `json:"filename"`
	Extension     string `json:"extension"`
	Mimetype      string `json:"mimetype"`
	CompanyID     *int64 `json:"-"`
	BackendID     int64  `json:"-"`
	Active        bool   `json:"-"`
}

// DocumentStore is a storage_backend row. ServerEnvDefaults carries the
// backend type and, for S3, the endpoint/credentials/bucket keys the ERP
// stores under x_*_env_default names.
type DocumentStore struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	ServerEnvDefaults map[string]string `json:"-"`
	IsPublic          bool              `json:"is_public"`
}

// BackendType extracts the configured backend type, empty when unset.
func (d *DocumentStore) BackendType() string {
	return d.ServerEnvDefaults["x_backend_type_env_default"]
}
