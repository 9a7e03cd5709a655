package youtube

// Raw YouTube Data API v3 response shapes. Every field the catalog depends on is
// optional here; parseVideo decides what is required.

type Thumbnail struct {
	URL string `json:"url"`
}

type Thumbnails struct {
	Maxres   *Thumbnail `json:"maxres,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	Default  *Thumbnail `json:"default,omitempty"`
}

type videoSnippet struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PublishedAt string      `json:"publishedAt"`
	CategoryID  string      `json:"categoryId"`
	Thumbnails  *Thumbnails `json:"thumbnails"`
}

type videoContentDetails struct {
	Duration string `json:"duration"`
}

type videoStatistics struct {
	ViewCount string `json:"viewCount"`
}

type videoItem struct {
	ID             string               `json:"id"`
	Snippet        *videoSnippet        `json:"snippet"`
	ContentDetails *videoContentDetails `json:"contentDetails"`
	Statistics     *videoStatistics     `json:"statistics"`
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type playlistItem struct {
	Snippet *struct {
		ResourceID *struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

type playlistItemsResponse struct {
	Items         []playlistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet *struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Thumbnails  *Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics *struct {
		SubscriberCount string `json:"subscriberCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
	ContentDetails *struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type channelListResponse struct {
	Items []channelItem `json:"items"`
}

// apiErrorResponse is Google's error envelope.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
