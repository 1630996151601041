// Package client fetches per-mailbox usage statistics over IMAP using
// master-user authentication.
package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/greeddj/mailreport-go/internal/report"
)

const (
	// mailboxChanBuffer is the buffer size for folder listing channels.
	mailboxChanBuffer = 10
	// messageChanBuffer is the buffer size for message fetching channels.
	messageChanBuffer = 10
)

// progressReporter surfaces progress updates to the UI layer.
type progressReporter interface {
	Update(message string)
	IsQuiet() bool
}

// Scanner opens one IMAP session per mailbox identity and sums folder
// statistics. Logins use the master-user convention: the session
// authenticates as "<identity><separator><admin user>" with the admin
// password.
type Scanner struct {
	serverAddr string                              // IMAP server address.
	adminUser  string                              // Master user name.
	adminPass  string                              // Master user password.
	separator  string                              // Master-user login separator.
	dialFn     func(addr string) (net.Conn, error) // Connection dialer function.

	prefix   string           // Log message prefix.
	progress progressReporter // Progress update interface.
	verbose  bool             // Enable verbose logging.
}

// NewScanner builds a scanner for the given server and master credentials.
// Connections are established lazily, one per Statistics call.
func NewScanner(addr, adminUser, adminPass, separator string, useTLS bool, tlsConfig *tls.Config) *Scanner {
	s := &Scanner{
		serverAddr: addr,
		adminUser:  adminUser,
		adminPass:  adminPass,
		separator:  separator,
	}

	s.dialFn = func(addr string) (net.Conn, error) {
		if useTLS {
			return tls.Dial("tcp", addr, tlsConfig)
		}
		return net.Dial("tcp", addr)
	}

	return s
}

// SetPrefix configures the log prefix used in progress messages.
func (s *Scanner) SetPrefix(p string) {
	s.prefix = p
}

// SetProgress wires a progress reporter for spinner/log updates.
func (s *Scanner) SetProgress(p progressReporter) {
	s.progress = p
}

// SetVerbose toggles per-folder progress messages.
func (s *Scanner) SetVerbose(v bool) {
	s.verbose = v
}

// UpdateProgress sends a message to the configured progress reporter if available.
func (s *Scanner) UpdateProgress(message string) {
	if s.progress != nil && !s.progress.IsQuiet() {
		s.progress.Update(message)
	}
}

// loginName builds the master-user login for a mailbox identity.
func (s *Scanner) loginName(identity string) string {
	return identity + s.separator + s.adminUser
}

// connectAndLogin establishes a new IMAP session for the given identity.
func (s *Scanner) connectAndLogin(identity string) (*client.Client, error) {
	conn, err := s.dialFn(s.serverAddr)
	if err != nil {
		return nil, err
	}

	c, err := client.New(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := c.Login(s.loginName(identity), s.adminPass); err != nil {
		_ = c.Logout()
		return nil, err
	}

	return c, nil
}

// Statistics fetches usage statistics for one mailbox identity. A transient
// connection error triggers a single fresh-session retry; anything else is
// returned as-is. Last logon is not observable over IMAP and stays unset.
func (s *Scanner) Statistics(identity string) (report.MailboxStatistics, error) {
	stats, err := s.scan(identity)
	if err != nil && isConnError(err) {
		s.UpdateProgress(fmt.Sprintf("[%s] Connection lost scanning %s, retrying...", s.prefix, identity))
		stats, err = s.scan(identity)
	}
	if err != nil {
		return report.MailboxStatistics{}, fmt.Errorf("statistics for %s: %w", identity, err)
	}
	return stats, nil
}

// scan runs one full session for the identity: login, walk all folders,
// sum message counts and sizes.
func (s *Scanner) scan(identity string) (report.MailboxStatistics, error) {
	c, err := s.connectAndLogin(identity)
	if err != nil {
		return report.MailboxStatistics{}, err
	}
	defer func() {
		_ = c.Logout()
	}()

	folders, err := listFolders(c)
	if err != nil {
		return report.MailboxStatistics{}, fmt.Errorf("[%s] list folders: %w", s.prefix, err)
	}

	var totalBytes int64
	var itemCount int64

	for i, folder := range folders {
		if s.verbose {
			s.UpdateProgress(fmt.Sprintf("[%s] %s: folder %d/%d: %s", s.prefix, identity, i+1, len(folders), folder))
		}

		status, err := c.Status(folder, []imap.StatusItem{imap.StatusMessages})
		if err != nil {
			return report.MailboxStatistics{}, fmt.Errorf("[%s] status for %s: %w", s.prefix, folder, err)
		}

		itemCount += int64(status.Messages)

		if status.Messages > 0 {
			size, err := folderSize(c, folder)
			if err != nil {
				return report.MailboxStatistics{}, fmt.Errorf("[%s] size of %s: %w", s.prefix, folder, err)
			}
			totalBytes += size
		}
	}

	return report.MailboxStatistics{
		TotalItemSize: report.FormatSizeWithBytes(totalBytes),
		ItemCount:     itemCount,
	}, nil
}

// listFolders returns the names of all folders in the session's mailbox.
func listFolders(c *client.Client) ([]string, error) {
	mailboxes := make(chan *imap.MailboxInfo, mailboxChanBuffer)
	done := make(chan error, 1)
	go func() {
		done <- c.List("", "*", mailboxes)
	}()

	var names []string
	for m := range mailboxes {
		names = append(names, m.Name)
	}

	if err := <-done; err != nil {
		return nil, err
	}

	return names, nil
}

// folderSize calculates the total size of all messages in a folder.
func folderSize(c *client.Client, folder string) (int64, error) {
	mbox, err := c.Select(folder, true)
	if err != nil {
		return 0, err
	}

	if mbox.Messages == 0 {
		return 0, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, mbox.Messages)

	messages := make(chan *imap.Message, messageChanBuffer)
	done := make(chan error, 1)

	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{imap.FetchRFC822Size}, messages)
	}()

	var total int64
	for msg := range messages {
		total += int64(msg.Size)
	}

	if err := <-done; err != nil {
		return 0, err
	}

	return total, nil
}

// isConnError determines if an error is connection-related and warrants a retry.
func isConnError(err error) bool {
	var netErr net.Error
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.As(err, &netErr)
}

// Tenant combines a static directory of mailbox records with a scanner that
// looks up live statistics per identity. It is the statistics source handed
// to the reporting pass.
type Tenant struct {
	records []report.MailboxRecord
	scanner *Scanner
}

// NewTenant builds a tenant source from directory records and a scanner.
func NewTenant(records []report.MailboxRecord, scanner *Scanner) *Tenant {
	return &Tenant{records: records, scanner: scanner}
}

// ListMailboxes returns the tenant directory in its configured order.
func (t *Tenant) ListMailboxes() ([]report.MailboxRecord, error) {
	return t.records, nil
}

// Statistics fetches live statistics for one directory identity.
func (t *Tenant) Statistics(identity string) (report.MailboxStatistics, error) {
	return t.scanner.Statistics(identity)
}
