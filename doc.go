/* Package fourth is a minimal stack-oriented concatenative language engine.

A program is a sequence of words: primitives implemented by the runtime,
and definitions compiled from other words. Compiled definitions are
threaded code, a flat vector of one-cell instructions where a cell is
either an opcode or the parameter owned by the opcode before it -- the
value pushed by LITERAL, the signed offset of a BRANCH, or the body
entered by a CALL. The representation is the classic indirect-threaded
Forth layout; the compiler builds and inspects the vectors, and a small
switched interpreter in this package (Run) executes them.

What makes the compiler more than an assembler is the verifier. Every
word carries a stack effect, the triple (inputs consumed, net depth
change, transient peak). Before a definition is allowed to exist, the
verifier walks its instruction vector along every reachable control flow
path, composing effects sequentially and merging them where paths join;
paths may only join when they agree on net depth, and every path that
reaches RETURN must agree with every other. The result is a compile-time
guarantee that running the word cannot underflow the stack and a precise
bound on how much stack it needs, which is why the runtime allocates the
data stack once and never checks depth again.

Source text is the usual whitespace-separated Forth surface: number and
quoted-string literals push themselves, identifiers are looked up in the
vocabulary, and the structured control words IF ELSE THEN and BEGIN
WHILE REPEAT compile to conditional and unconditional branches resolved
through a small control stack while the definition is still growing. Raw
BRANCH and 0BRANCH with explicit offsets can be spelled directly when
compiling with params allowed, which is how the low level test corpus is
written.

The vocabulary is process wide: primitives are installed at start, and
each successful compile of a named definition appends to it. A failed
compile installs nothing. Installed words are immutable, so compiling
from several goroutines needs only the vocabulary's single writer
discipline and no other coordination.

The disassembler inverts compilation, mapping opcode cells back to words
(CALL cells resolve through the vocabulary's reverse lookup) so that
what the compiler emitted can always be read back out.
*/
package fourth
