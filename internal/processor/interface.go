package processor

import "context"

// Processor turns one recording from the inbox into transcript files in the output folder
type Processor interface {
	Process(ctx context.Context, mediaPath string) error
}
