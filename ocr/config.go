package ocr

// PageSegMode selects how the OCR engine segments a page before
// recognition. Values match Tesseract's PSM numbering.
type PageSegMode int

const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Config holds the OCR engine setup.
type Config struct {
	// Language is the Tesseract language string. Multiple languages
	// join with "+". Default: "fin+eng"; the reports are Finnish with
	// English terms mixed in.
	Language string

	// PageSegMode is the initial segmentation mode. Default:
	// PSM_SINGLE_BLOCK; the scanner retries with looser modes when the
	// noise gate rejects the output.
	PageSegMode PageSegMode
}

// DefaultConfig returns the engine setup used in production runs.
func DefaultConfig() Config {
	return Config{
		Language:    "fin+eng",
		PageSegMode: PSM_SINGLE_BLOCK,
	}
}
