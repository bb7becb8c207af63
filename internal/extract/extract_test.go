// Package extract_test exercises field extraction against representative
// catalog markup, including the malformed shapes seen in the wild.
package extract_test

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfdata/bookharvest/internal/extract"
)

const bookURL = "https://www.goodreads.com/book/show/1885.Pride_and_Prejudice"

const wellFormedDoc = `<html><head>
<meta property="books:isbn" content="9780141439518"/>
<meta itemprop="ratingCount" content="4023813"/>
</head><body>
<div id="metacol">
  <h1 id="bookTitle"> Pride and Prejudice </h1>
  <div id="bookAuthors">
    <a class="authorName" href="/author/show/1265"><span itemprop="name">Jane Austen</span></a>
    <a class="authorName" href="/author/show/999"><span itemprop="name">Somebody Else</span></a>
  </div>
  <div id="bookMeta">
    <span itemprop="ratingValue"> 4.28 </span>
  </div>
  <div id="description">
    <span>Since its immediate success...</span>
    <span>Since its immediate success in 1813, Pride and Prejudice has remained one of the most popular novels in the English language.</span>
  </div>
  <div id="details">
    <div class="row"><span itemprop="bookFormat">Paperback</span>, <span itemprop="numberOfPages">279 pages</span></div>
    <div class="row">Published
      March 4th 2003
      by Penguin Books
      <nobr class="greyText">(first published January 28th 1813)</nobr>
    </div>
    <div class="row"><div itemprop="inLanguage">English</div></div>
  </div>
</div>
<div class="rightContainer">
  <a class="actionLinkLite bookPageGenreLink" href="/genres/classics">Classics</a>
  <a class="actionLinkLite bookPageGenreLink" href="/genres/fiction">Fiction</a>
  <a class="actionLinkLite bookPageGenreLink" href="/genres/classics">Classics</a>
  <div id="bookDataBox">
    <div class="clearFloats">
      <div class="infoBoxRowTitle">Original Title</div>
      <div class="infoBoxRowItem">Pride and Prejudice</div>
    </div>
    <div class="clearFloats">
      <div class="infoBoxRowTitle">Setting</div>
      <div class="infoBoxRowItem"> Longbourn, England  (United Kingdom) </div>
    </div>
  </div>
</div>
</body></html>`

// corruptedDoc keeps the mandatory meta column intact while ruining every
// optional field a different way.
const corruptedDoc = `<html><head>
<meta property="books:isbn" content="null"/>
<meta itemprop="ratingCount" content="lots"/>
</head><body>
<div id="metacol">
  <h1 id="bookTitle">Mansfield Park</h1>
  <a class="authorName" href="/author/show/1265"><span itemprop="name">Jane Austen</span></a>
  <span itemprop="ratingValue">four-ish</span>
  <span itemprop="numberOfPages">unknown</span>
  <div id="details">
    <div class="row"><span itemprop="bookFormat">  </span></div>
  </div>
</div>
<div id="bookDataBox">
  <div class="clearFloats">
    <div class="infoBoxRowTitle">Setting</div>
    <script type="text/javascript">//<![CDATA[ window.render = 1; ]]></script>
  </div>
</div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := extract.Document([]byte(html))
	require.NoError(t, err)
	return doc
}

func TestExtractWellFormed(t *testing.T) {
	t.Parallel()

	rec, err := extract.Extract(mustDoc(t, wellFormedDoc), bookURL)
	require.NoError(t, err)

	require.NotNil(t, rec.Title)
	assert.Equal(t, "Pride and Prejudice", *rec.Title)
	require.NotNil(t, rec.Author)
	assert.Equal(t, "Jane Austen", *rec.Author)
	assert.Equal(t, bookURL, rec.GoodreadsURL)

	require.NotNil(t, rec.ISBN)
	assert.Equal(t, "9780141439518", *rec.ISBN)
	require.NotNil(t, rec.RatingCount)
	assert.Equal(t, 4023813, *rec.RatingCount)
	require.NotNil(t, rec.RatingAverage)
	assert.InDelta(t, 4.28, *rec.RatingAverage, 1e-9)
	require.NotNil(t, rec.Pages)
	assert.Equal(t, 279, *rec.Pages)
	require.NotNil(t, rec.BookFormat)
	assert.Equal(t, "Paperback", *rec.BookFormat)
	require.NotNil(t, rec.Language)
	assert.Equal(t, "English", *rec.Language)
	require.NotNil(t, rec.Description)
	assert.Contains(t, *rec.Description, "one of the most popular novels")

	require.NotNil(t, rec.DatePublished)
	assert.Equal(t, "March 4th 2003", *rec.DatePublished)
	require.NotNil(t, rec.Publisher)
	assert.Equal(t, "Penguin Books", *rec.Publisher)

	assert.Equal(t, []string{"Classics", "Fiction", "Classics"}, rec.Genres)

	require.NotNil(t, rec.Settings.Text)
	assert.Equal(t, " Longbourn, England  (United Kingdom) ", *rec.Settings.Text)
}

func TestExtractIsolatesFieldFailures(t *testing.T) {
	t.Parallel()

	rec, err := extract.Extract(mustDoc(t, corruptedDoc), bookURL)
	require.NoError(t, err)

	// Mandatory fields survive.
	require.NotNil(t, rec.Title)
	assert.Equal(t, "Mansfield Park", *rec.Title)
	require.NotNil(t, rec.Author)

	// Each ruined field nulls out on its own.
	assert.Nil(t, rec.ISBN, "literal null isbn must become absence")
	assert.Nil(t, rec.RatingCount)
	assert.Nil(t, rec.RatingAverage)
	assert.Nil(t, rec.Pages)
	assert.Nil(t, rec.BookFormat, "blank format must become absence")
	assert.Nil(t, rec.Language)
	assert.Nil(t, rec.Description)
	assert.Nil(t, rec.DatePublished, "single-row details leaves no publication line")
	assert.Nil(t, rec.Publisher)

	// No genre links means an empty list, never null.
	require.NotNil(t, rec.Genres)
	assert.Empty(t, rec.Genres)

	// The positional sibling read surfaces the script body; rectification
	// happens downstream, not here.
	require.NotNil(t, rec.Settings.Text)
	assert.Contains(t, *rec.Settings.Text, "//<![CDATA[")
}

func TestExtractRequiresMetaColumn(t *testing.T) {
	t.Parallel()

	t.Run("MissingRegion", func(t *testing.T) {
		_, err := extract.Extract(mustDoc(t, `<html><body><p>not a book page</p></body></html>`), bookURL)
		assert.ErrorIs(t, err, extract.ErrMetaColumnMissing)
	})

	t.Run("BlankTitle", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><div id="metacol"><h1 id="bookTitle">  </h1>
			<a class="authorName"><span itemprop="name">Jane Austen</span></a></div></body></html>`)
		_, err := extract.Extract(doc, bookURL)
		assert.ErrorIs(t, err, extract.ErrMetaColumnMissing)
	})

	t.Run("MissingAuthor", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><div id="metacol"><h1 id="bookTitle">Emma</h1></div></body></html>`)
		_, err := extract.Extract(doc, bookURL)
		assert.ErrorIs(t, err, extract.ErrMetaColumnMissing)
	})
}
