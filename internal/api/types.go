package api

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

type ModelInfo struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Name      string `json:"name,omitempty"`
	Words     int    `json:"words"`
	Dimension int    `json:"dimension"`
}

type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

type DeleteModelResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type VectorResponse struct {
	Object string    `json:"object"`
	Model  string    `json:"model"`
	Word   string    `json:"word"`
	Vector []float32 `json:"vector"`
}

type NeighborsRequest struct {
	Model  string    `json:"model,omitempty"`
	Word   string    `json:"word,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
	K      *int      `json:"k,omitempty"`
}

type Neighbor struct {
	Word       string  `json:"word"`
	Similarity float32 `json:"similarity"`
}

type NeighborsResponse struct {
	Object string     `json:"object"`
	Model  string     `json:"model"`
	Data   []Neighbor `json:"data"`
}

type SimilarityRequest struct {
	Model string `json:"model,omitempty"`
	A     string `json:"a"`
	B     string `json:"b"`
}

type SimilarityResponse struct {
	Object     string  `json:"object"`
	Model      string  `json:"model"`
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float32 `json:"similarity"`
}

// EmbeddingsRequest follows the OpenAI embeddings shape. Input is a single
// token or an array of tokens.
type EmbeddingsRequest struct {
	Model string `json:"model,omitempty"`
	Input any    `json:"input"`
}

type EmbeddingData struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type EmbeddingsResponse struct {
	Object string          `json:"object"`
	Model  string          `json:"model"`
	Data   []EmbeddingData `json:"data"`
}
