// Package ytdlp wraps the yt-dlp command line tool: format probing,
// downloads (optionally through aria2c as yt-dlp's external
// downloader), and self-update. spool never speaks any media protocol
// itself; everything goes through this client.
package ytdlp
