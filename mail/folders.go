package mail

// ArchiveFolderName is excluded from the unread total.
const ArchiveFolderName = "Archive"

// MailFolder is one entry of the MailFolders listing.
type MailFolder struct {
	ID              string `json:"Id,omitempty"`
	DisplayName     string `json:"DisplayName"`
	UnreadItemCount int    `json:"UnreadItemCount"`
	TotalItemCount  int    `json:"TotalItemCount,omitempty"`
}

type mailFoldersResponse struct {
	Value []MailFolder `json:"value"`
}

// Profile is the subset of /me this client reads.
type Profile struct {
	ID           string `json:"Id,omitempty"`
	EmailAddress string `json:"EmailAddress"`
	DisplayName  string `json:"DisplayName,omitempty"`
	Alias        string `json:"Alias,omitempty"`
}

// UnreadCount sums UnreadItemCount over every folder except Archive.
func UnreadCount(folders []MailFolder) int {
	total := 0
	for _, f := range folders {
		if f.DisplayName == ArchiveFolderName {
			continue
		}
		total += f.UnreadItemCount
	}
	return total
}
