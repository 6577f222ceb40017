package opine

import (
	"time"
)

// Source represents a feed of raw comments.
type Source struct {
	ID                  string    `json:"id"                   yaml:"id"`
	Owner               string    `json:"owner"                yaml:"owner"`
	Name                string    `json:"name"                 yaml:"name"`
	Title               string    `json:"title"                yaml:"title"`
	Description         string    `json:"description"          yaml:"description"`
	Language            string    `json:"language"             yaml:"language"`
	ShouldTranslate     bool      `json:"should_translate"     yaml:"should_translate"`
	SensitiveProperties []string  `json:"sensitive_properties" yaml:"sensitive_properties"`
	CreatedAt           time.Time `json:"created_at"           yaml:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"           yaml:"updated_at"`
}

// FullName returns the owner-qualified name of the source.
func (s *Source) FullName() string {
	return s.Owner + "/" + s.Name
}

// SourceCreateRequest is the payload for creating a source.
type SourceCreateRequest struct {
	Title               string   `json:"title,omitempty"                yaml:"title,omitempty"`
	Description         string   `json:"description,omitempty"          yaml:"description,omitempty"`
	Language            string   `json:"language,omitempty"             yaml:"language,omitempty"`
	ShouldTranslate     *bool    `json:"should_translate,omitempty"     yaml:"should_translate,omitempty"`
	SensitiveProperties []string `json:"sensitive_properties,omitempty" yaml:"sensitive_properties,omitempty"`
}

// SourceUpdateRequest is the payload for updating a source.
type SourceUpdateRequest struct {
	Title               *string  `json:"title,omitempty"                yaml:"title,omitempty"`
	Description         *string  `json:"description,omitempty"          yaml:"description,omitempty"`
	ShouldTranslate     *bool    `json:"should_translate,omitempty"     yaml:"should_translate,omitempty"`
	SensitiveProperties []string `json:"sensitive_properties,omitempty" yaml:"sensitive_properties,omitempty"`
}

// LabelDef defines one assignable label on a dataset.
type LabelDef struct {
	Name         string `json:"name"                   yaml:"name"`
	Title        string `json:"title,omitempty"        yaml:"title,omitempty"`
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// Dataset represents a labeled view over one or more sources.
type Dataset struct {
	ID          string     `json:"id"                     yaml:"id"`
	Owner       string     `json:"owner"                  yaml:"owner"`
	Name        string     `json:"name"                   yaml:"name"`
	Title       string     `json:"title"                  yaml:"title"`
	Description string     `json:"description"            yaml:"description"`
	SourceIDs   []string   `json:"source_ids"             yaml:"source_ids"`
	LabelDefs   []LabelDef `json:"label_defs"             yaml:"label_defs"`
	ModelFamily string     `json:"model_family,omitempty" yaml:"model_family,omitempty"`
	CreatedAt   time.Time  `json:"created_at"             yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"             yaml:"updated_at"`
}

// FullName returns the owner-qualified name of the dataset.
func (d *Dataset) FullName() string {
	return d.Owner + "/" + d.Name
}

// DatasetCreateRequest is the payload for creating a dataset.
type DatasetCreateRequest struct {
	Title       string     `json:"title,omitempty"        yaml:"title,omitempty"`
	Description string     `json:"description,omitempty"  yaml:"description,omitempty"`
	SourceIDs   []string   `json:"source_ids,omitempty"   yaml:"source_ids,omitempty"`
	LabelDefs   []LabelDef `json:"label_defs,omitempty"   yaml:"label_defs,omitempty"`
	ModelFamily string     `json:"model_family,omitempty" yaml:"model_family,omitempty"`
}

// DatasetUpdateRequest is the payload for updating a dataset.
type DatasetUpdateRequest struct {
	Title       *string    `json:"title,omitempty"       yaml:"title,omitempty"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty"`
	SourceIDs   []string   `json:"source_ids,omitempty"  yaml:"source_ids,omitempty"`
	LabelDefs   []LabelDef `json:"label_defs,omitempty"  yaml:"label_defs,omitempty"`
}

// ValidationStatistics summarizes model validation for a dataset.
type ValidationStatistics struct {
	NumLabelled          int       `json:"num_labelled"           yaml:"num_labelled"`
	NumReviewed          int       `json:"num_reviewed"           yaml:"num_reviewed"`
	MeanAveragePrecision float64   `json:"mean_average_precision" yaml:"mean_average_precision"`
	UpdatedAt            time.Time `json:"updated_at"             yaml:"updated_at"`
}

// Bucket represents a raw document store.
type Bucket struct {
	ID           string    `json:"id"                      yaml:"id"`
	Owner        string    `json:"owner"                   yaml:"owner"`
	Name         string    `json:"name"                    yaml:"name"`
	TransformTag string    `json:"transform_tag,omitempty" yaml:"transform_tag,omitempty"`
	CreatedAt    time.Time `json:"created_at"              yaml:"created_at"`
}

// FullName returns the owner-qualified name of the bucket.
func (b *Bucket) FullName() string {
	return b.Owner + "/" + b.Name
}

// BucketCreateRequest is the payload for creating a bucket.
type BucketCreateRequest struct {
	TransformTag string `json:"transform_tag,omitempty" yaml:"transform_tag,omitempty"`
}

// Stream represents a committed consumer over a dataset, yielding
// comments with model predictions.
type Stream struct {
	ID           string    `json:"id"                      yaml:"id"`
	Name         string    `json:"name"                    yaml:"name"`
	Title        string    `json:"title"                   yaml:"title"`
	DatasetID    string    `json:"dataset_id"              yaml:"dataset_id"`
	ModelVersion int       `json:"model_version,omitempty" yaml:"model_version,omitempty"`
	CreatedAt    time.Time `json:"created_at"              yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"              yaml:"updated_at"`
}

// StreamCreateRequest is the payload for creating a stream.
type StreamCreateRequest struct {
	Name         string `json:"name"                    yaml:"name"`
	Title        string `json:"title,omitempty"         yaml:"title,omitempty"`
	ModelVersion int    `json:"model_version,omitempty" yaml:"model_version,omitempty"`
}

// PredictedLabel is a model-predicted label on a comment.
type PredictedLabel struct {
	Name        []string `json:"name"                yaml:"name"`
	Probability float64  `json:"probability"         yaml:"probability"`
	Sentiment   string   `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// StreamResult pairs a comment with its predictions.
type StreamResult struct {
	Comment    Comment          `json:"comment"    yaml:"comment"`
	Prediction []PredictedLabel `json:"prediction" yaml:"prediction"`
	Sequence   string           `json:"sequence"   yaml:"sequence"`
}

// StreamBatch is one fetched batch of stream results.
type StreamBatch struct {
	Results      []StreamResult `json:"results"       yaml:"results"`
	Continuation string         `json:"continuation"  yaml:"continuation"`
	FilteredHere int            `json:"filtered_here" yaml:"filtered_here"`
}

// Project represents a namespace grouping sources and datasets.
type Project struct {
	ID          string    `json:"id"          yaml:"id"`
	Name        string    `json:"name"        yaml:"name"`
	Title       string    `json:"title"       yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at"  yaml:"created_at"`
}

// ProjectCreateRequest is the payload for creating a project.
type ProjectCreateRequest struct {
	Title       string   `json:"title,omitempty"        yaml:"title,omitempty"`
	Description string   `json:"description,omitempty"  yaml:"description,omitempty"`
	UserIDs     []string `json:"user_ids,omitempty"     yaml:"user_ids,omitempty"`
}

// ProjectUpdateRequest is the payload for updating a project.
type ProjectUpdateRequest struct {
	Title       *string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// User represents a platform user.
type User struct {
	ID                 string              `json:"id"                  yaml:"id"`
	Username           string              `json:"username"            yaml:"username"`
	Email              string              `json:"email"               yaml:"email"`
	GlobalPermissions  []string            `json:"global_permissions"  yaml:"global_permissions"`
	ProjectPermissions map[string][]string `json:"project_permissions" yaml:"project_permissions"`
	CreatedAt          time.Time           `json:"created_at"          yaml:"created_at"`
}

// UserCreateRequest is the payload for creating a user.
type UserCreateRequest struct {
	Username          string   `json:"username"                     yaml:"username"`
	Email             string   `json:"email"                        yaml:"email"`
	GlobalPermissions []string `json:"global_permissions,omitempty" yaml:"global_permissions,omitempty"`
}

// UserPermissionsUpdateRequest replaces a user's permissions.
type UserPermissionsUpdateRequest struct {
	GlobalPermissions  []string            `json:"global_permissions,omitempty"  yaml:"global_permissions,omitempty"`
	ProjectPermissions map[string][]string `json:"project_permissions,omitempty" yaml:"project_permissions,omitempty"`
}

// Message is one message within a comment (e.g. an email body or a chat
// turn).
type Message struct {
	Body       string    `json:"body"                 yaml:"body"`
	From       string    `json:"from,omitempty"       yaml:"from,omitempty"`
	To         []string  `json:"to,omitempty"         yaml:"to,omitempty"`
	Subject    string    `json:"subject,omitempty"    yaml:"subject,omitempty"`
	SentAt     time.Time `json:"sent_at,omitempty"    yaml:"sent_at,omitempty"`
	Language   string    `json:"language,omitempty"   yaml:"language,omitempty"`
	Translated bool      `json:"translated,omitempty" yaml:"translated,omitempty"`
}

// Comment is a unit of text within a source. Its ID is unique within the
// source; UID is globally unique as "<source id>.<comment id>".
type Comment struct {
	ID             string         `json:"id"                        yaml:"id"`
	UID            string         `json:"uid"                       yaml:"uid"`
	SourceID       string         `json:"source_id"                 yaml:"source_id"`
	Timestamp      time.Time      `json:"timestamp"                 yaml:"timestamp"`
	Messages       []Message      `json:"messages"                  yaml:"messages"`
	UserProperties map[string]any `json:"user_properties,omitempty" yaml:"user_properties,omitempty"`
}

// NewComment is the payload for uploading one comment.
type NewComment struct {
	ID             string         `json:"id"                        yaml:"id"`
	Timestamp      time.Time      `json:"timestamp"                 yaml:"timestamp"`
	Messages       []Message      `json:"messages"                  yaml:"messages"`
	UserProperties map[string]any `json:"user_properties,omitempty" yaml:"user_properties,omitempty"`
}

// CommentsPage is one page of comments from a source.
type CommentsPage struct {
	Comments     []Comment `json:"comments"     yaml:"comments"`
	Continuation string    `json:"continuation" yaml:"continuation"`
}

// UsersPage is one page of users.
type UsersPage struct {
	Users        []User `json:"users"        yaml:"users"`
	Continuation string `json:"continuation" yaml:"continuation"`
}
