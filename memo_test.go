package ripple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeMemo(t *testing.T) {
	memo := EncodeMemo(MemoInput{Type: "photo", Format: "text/plain", Data: "image.png"})

	assert.Equal(t, "70686F746F", memo.Memo.MemoType)
	assert.Equal(t, "746578742F706C61696E", memo.Memo.MemoFormat)
	assert.Equal(t, "696D6167652E706E67", memo.Memo.MemoData)
}

func TestEncodeMemo_EmptyFieldsStayAbsent(t *testing.T) {
	memo := EncodeMemo(MemoInput{Data: "hi"})

	assert.Empty(t, memo.Memo.MemoType)
	assert.Empty(t, memo.Memo.MemoFormat)
	assert.Equal(t, "6869", memo.Memo.MemoData)
}
