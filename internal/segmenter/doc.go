// Package segmenter decides how text is cut into comparison units before diffing.
//
// The policy is deliberately small: languages whose writing system does not use whitespace as a primary word boundary (Japanese, Simplified Chinese) are compared per character;
// everything else is compared per word, where a "word" is a UAX #29 word-boundary token. Whitespace and punctuation runs come out as their own tokens, so they can be equal or changed
// on their own.
//
// Tokenize always returns tokens whose concatenation is exactly the input. Callers rely on that to keep the diff concatenation invariants intact.
//
// Language codes are compared verbatim by IsNonSpaceSegmented. Use Canonicalize on user input first if casing may vary ("zh-hans" vs "zh-Hans").
package segmenter
