package extract_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfdata/bookharvest/internal/extract"
)

const listingDoc = `<html><body>
<div class="leftContainer">
  <div class="elementList">
    <a class="leftAlignedImage" href="/book/show/1885.Pride_and_Prejudice"><img src="x.jpg"/></a>
    <a class="bookTitle" href="/book/show/1885.Pride_and_Prejudice"><span itemprop="name">Pride and Prejudice</span></a>
  </div>
  <div class="elementList">
    <a class="bookTitle" href="/book/show/2657.To_Kill_a_Mockingbird"><span itemprop="name">To Kill a Mockingbird</span></a>
  </div>
  <div class="elementList">
    <a class="bookTitle" href="/book/show/1885.Pride_and_Prejudice"><span itemprop="name">Pride and Prejudice (again)</span></a>
  </div>
  <div class="elementList">
    <a class="bookTitle"><span itemprop="name">anchor without href is skipped</span></a>
  </div>
</div>
<a href="/user/sign_out" rel="nofollow">signOut</a>
</body></html>`

func TestBookURLs(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://www.goodreads.com")
	require.NoError(t, err)

	urls := extract.BookURLs(mustDoc(t, listingDoc), base)
	assert.Equal(t, []string{
		"https://www.goodreads.com/book/show/1885.Pride_and_Prejudice",
		"https://www.goodreads.com/book/show/2657.To_Kill_a_Mockingbird",
	}, urls, "duplicates collapse, order is preserved, cover links are ignored")
}

func TestBookURLsEmptyListing(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://www.goodreads.com")
	require.NoError(t, err)

	urls := extract.BookURLs(mustDoc(t, `<html><body><p>shelf is empty</p></body></html>`), base)
	require.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestHasMarker(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.HasMarker([]byte(listingDoc), "signOut"))
	assert.False(t, extract.HasMarker([]byte(listingDoc), "currentUser"))
	assert.False(t, extract.HasMarker([]byte(listingDoc), ""))
}
