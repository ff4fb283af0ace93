package models

// PageContent is one logical page of extracted document text, in the shape
// the ingestion endpoint expects.
type PageContent struct {
	Text     string `json:"text"`
	PageNum  int    `json:"page_num"`
	FileName string `json:"file_name"`
}
