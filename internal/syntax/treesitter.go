package syntax

import (
	"context"
	"errors"
	"fmt"

	"github.com/bethropolis/tide-nvim/internal/logger"
	"github.com/bethropolis/tide-nvim/internal/syntax/lang"
	"github.com/bethropolis/tide-nvim/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned when Parse is called without a grammar.
var ErrNoLanguage = errors.New("no language provided for parsing")

// TreeSitterParser parses buffers with tree-sitter. Not safe for concurrent use.
type TreeSitterParser struct {
	parser *sitter.Parser
}

// NewTreeSitterParser creates a parser instance.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{parser: sitter.NewParser()}
}

// Parse parses src from scratch. No previous tree is reused.
func (p *TreeSitterParser) Parse(ctx context.Context, language *lang.Language, src []byte) (Tree, error) {
	if language == nil || language.TreeSitterLang == nil {
		return nil, ErrNoLanguage
	}
	p.parser.SetLanguage(language.TreeSitterLang)

	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	logger.DebugTagf("parse", "Parsed %d bytes as %s", len(src), language.Name)
	return &tsTree{tree: tree}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *TreeSitterParser) Close() {
	p.parser.Close()
}

type tsTree struct {
	tree *sitter.Tree
}

func (t *tsTree) Root() Node {
	return tsNode{n: t.tree.RootNode()}
}

func (t *tsTree) Close() {
	t.tree.Close()
}

type tsNode struct {
	n *sitter.Node
}

func (n tsNode) Kind() string { return n.n.Type() }
func (n tsNode) ChildCount() int { return int(n.n.ChildCount()) }
func (n tsNode) Child(i int) Node {
	return tsNode{n: n.n.Child(i)}
}
func (n tsNode) Start() types.Position { return pointToPosition(n.n.StartPoint()) }
func (n tsNode) End() types.Position { return pointToPosition(n.n.EndPoint()) }

// pointToPosition keeps tree-sitter's byte columns as they are.
func pointToPosition(p sitter.Point) types.Position {
	return types.Position{Line: int(p.Row), Col: int(p.Column)}
}
