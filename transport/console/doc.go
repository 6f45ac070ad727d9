// Package console implements the interactive terminal front end of the
// grid combat game.
//
// A Console reads one command per line, runs it through a
// service.GameService and prints the result. The board is drawn with an
// asterisk border; upper-case glyphs are powerlifters and lower-case glyphs
// are crossfitters.
//
// Usage:
//
//	c := console.New(svc, os.Stdin, os.Stdout, logger)
//	if err := c.Start(ctx, "skirmish"); err != nil {
//		return err
//	}
//	return c.Run(ctx)
package console
