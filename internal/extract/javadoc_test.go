package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Javadoc and comments:
// - Single-line javadoc with @param and @return
// - Multi-line class and method javadoc with annotations in between
// - @throws / @exception tags, first @return wins, inline tags stay in the description
// - Blocks followed by fields are not reported
// - Comments: kinds, line numbers, markers inside strings ignored

// Test: one-line javadoc before a method
func TestJavadocEntries_SingleLine(t *testing.T) {
	t.Parallel()

	doc := JavadocEntries("/** @param x desc @return y */\npublic int m(int x) { return x; }")

	assert.Empty(t, doc.Classes)
	require.Len(t, doc.Methods, 1)
	entry := doc.Methods[0]
	assert.Equal(t, "m", entry.Target)
	assert.Equal(t, "method", entry.TargetKind)
	assert.Equal(t, "int", entry.ReturnType)
	assert.Equal(t, "", entry.Description)
	assert.Equal(t, []JavadocParam{{Name: "x", Description: "desc"}}, entry.Params)
	assert.Equal(t, "y", entry.Returns)
	assert.Empty(t, entry.Throws)
}

// Test: class and method documentation
func TestJavadocEntries_ClassAndMethods(t *testing.T) {
	t.Parallel()

	src := `
/**
 * Manages users.
 * Uses the {@link UserRepository} for storage.
 */
@Service
public class UserService {

    /**
     * Loads a user.
     *
     * @param id the user id
     * @return the user
     * @returns ignored second return
     * @throws NotFoundException when missing
     * @exception IllegalStateException if closed
     */
    @Transactional(readOnly = true)
    public User load(Long id) throws NotFoundException { return null; }

    /** Not attached to a method. */
    private int counter;
}
`
	doc := JavadocEntries(src)

	require.Len(t, doc.Classes, 1)
	class := doc.Classes[0]
	assert.Equal(t, "UserService", class.Target)
	assert.Equal(t, "class", class.TargetKind)
	assert.Equal(t, "Manages users. Uses the {@link UserRepository} for storage.", class.Description)

	require.Len(t, doc.Methods, 1)
	method := doc.Methods[0]
	assert.Equal(t, "load", method.Target)
	assert.Equal(t, "User", method.ReturnType)
	assert.Equal(t, "Loads a user.", method.Description)
	assert.Equal(t, []JavadocParam{{Name: "id", Description: "the user id"}}, method.Params)
	assert.Equal(t, "the user", method.Returns)
	assert.Equal(t, []JavadocThrows{
		{Exception: "NotFoundException", Description: "when missing"},
		{Exception: "IllegalStateException", Description: "if closed"},
	}, method.Throws)
}

// Test: comment kinds and positions
func TestComments(t *testing.T) {
	t.Parallel()

	src := "// first\nString s = \"// not a comment\";\n/* block\n * second line */\n/** doc */\nint x; /**/"
	comments := Comments(src)

	require.Len(t, comments, 4)
	assert.Equal(t, Comment{Kind: CommentSingleLine, Text: "first", Line: 1}, comments[0])
	assert.Equal(t, Comment{Kind: CommentMultiLine, Text: "block second line", Lines: []string{"block", "second line"}, Line: 3}, comments[1])
	assert.Equal(t, Comment{Kind: CommentJavadoc, Text: "doc", Lines: []string{"doc"}, Line: 5}, comments[2])
	assert.Equal(t, CommentMultiLine, comments[3].Kind)
	assert.Equal(t, 6, comments[3].Line)

	assert.NotNil(t, Comments("int x;"))
	assert.Empty(t, Comments("int x;"))
}
