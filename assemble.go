package marketscan

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of blocks AssembleAll processes at once
// when Concurrency is not set.
const DefaultConcurrency = 8

// Assembler builds Posts from content blocks.
type Assembler struct {
	Config      Config
	Concurrency int
}

// NewAssembler returns an Assembler using cfg.
func NewAssembler(cfg Config) *Assembler {
	return &Assembler{Config: cfg}
}

// BlockError reports a content block that could not be assembled.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Assemble builds a Post from a single content block.
//
// Missing author markup is recovered with NonUserAuthor and missing price
// markup leaves Listing nil. A block without a timestamp and permalink
// cannot be interpreted and returns EINVALID.
func (a *Assembler) Assemble(b Block) (*Post, error) {
	post := &Post{
		Comments: a.comments(b),
		Author:   author(b),
	}

	link, timestamp, err := a.permalink(b)
	if err != nil {
		return nil, err
	}
	post.Link = link
	post.Timestamp = timestamp

	if product, ok := b.FindFirst(MarkerProductListing); ok {
		post.Listing = a.productListing(product)
		post.Seller = true
	} else if body, ok := b.FindFirst(MarkerRegularPostBody); ok {
		post.Listing = a.regularListing(body)
		if post.Listing != nil {
			post.Seller = a.Config.IsSeller(post.Listing.Content)
		}
	}

	return post, nil
}

// AssembleAll builds Posts from blocks concurrently and returns them in
// document order. Blocks that fail are left out; their errors are returned
// joined as *BlockError values so the caller can decide whether to skip them
// or abort. A canceled context stops the batch.
func (a *Assembler) AssembleAll(ctx context.Context, blocks []Block) ([]*Post, error) {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	posts := make([]*Post, len(blocks))
	errs := make([]error, len(blocks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, b := range blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, err := a.Assemble(b)
			if err != nil {
				errs[i] = &BlockError{Index: i, Err: err}
				return nil
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, errors.Join(errs...)
}

// comments builds one Comment per comment block. Comment blocks without an
// author or body are not comments and are skipped.
func (a *Assembler) comments(b Block) []Comment {
	var comments []Comment
	for _, cb := range b.FindAll(MarkerCommentBlock) {
		author, ok := cb.FindFirst(MarkerCommentAuthor)
		if !ok {
			continue
		}
		content, ok := cb.FindFirst(MarkerCommentContent)
		if !ok {
			continue
		}
		comments = append(comments, a.Config.NewComment(author.Text(), content.Text()))
	}
	return comments
}

// author returns the text of the author link, or NonUserAuthor when the
// block has no linked author.
func author(b Block) string {
	wrapper, ok := b.FindFirst(MarkerAuthor)
	if !ok {
		return NonUserAuthor
	}
	anchor, ok := wrapper.FindFirst(MarkerAnchor)
	if !ok {
		return NonUserAuthor
	}
	return anchor.Text()
}

// permalink returns the absolute post link and its human-readable time.
func (a *Assembler) permalink(b Block) (link, timestamp string, err error) {
	wrapper, ok := b.FindFirst(MarkerTimestampWrapper)
	if !ok {
		return "", "", Errorf(EINVALID, "content block has no timestamp")
	}
	anchor, ok := wrapper.FindFirst(MarkerAnchor)
	if !ok {
		return "", "", Errorf(EINVALID, "timestamp has no permalink")
	}
	href, ok := anchor.Attr("href")
	if !ok || href == "" {
		return "", "", Errorf(EINVALID, "permalink has no href")
	}
	text, ok := wrapper.FindFirst(MarkerTimestampText)
	if !ok {
		return "", "", Errorf(EINVALID, "timestamp has no text")
	}

	link, err = resolveURL(a.Config.BaseURL, href)
	if err != nil {
		return "", "", err
	}
	return link, text.Text(), nil
}

// productListing reads the dedicated price field of a product block.
// Giveaways and prices at or below the noise threshold return nil.
func (a *Assembler) productListing(product Block) *Listing {
	field, ok := product.FindFirst(MarkerProductPrice)
	if !ok {
		return nil
	}
	text := field.Text()
	if a.Config.IsFree(text) {
		return nil
	}
	price, err := ParseAmount(text)
	if err != nil || price <= a.Config.NoiseThreshold {
		return nil
	}
	return &Listing{Price: price, Content: product.Text()}
}

// regularListing picks the asking price out of free post text.
func (a *Assembler) regularListing(body Block) *Listing {
	content := body.Text()
	price, ok := LowestPrice(ExtractPrices(content), a.Config.NoiseThreshold)
	if !ok {
		return nil
	}
	return &Listing{Price: price, Content: content}
}

func resolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", Errorf(EINVALID, "invalid permalink %q: %v", href, err)
	}
	return b.ResolveReference(ref).String(), nil
}
